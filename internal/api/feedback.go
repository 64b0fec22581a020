package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/servicedesk-v2/backend/internal/service"
)

// FeedbackHandler serves the admin feedback overview. Feedback submission
// itself lives on the user request routes.
type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/feedback", h.ListFeedback)
}

// ListFeedback returns every feedback entry together with the rating
// distribution.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	feedback, err := h.feedbackService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.feedbackService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
		"stats":    stats,
	})
}
