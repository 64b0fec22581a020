package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/servicedesk-v2/backend/internal/middleware"
	"github.com/pageza/servicedesk-v2/backend/internal/service"
	"github.com/pageza/servicedesk-v2/backend/internal/types"
)

// RequestHandler serves the user-facing request routes. Every route runs
// behind the USER role guard; ownership of individual requests is checked
// here because the guard cannot know it.
type RequestHandler struct {
	requestService  service.IRequestService
	feedbackService service.IFeedbackService
}

func NewRequestHandler(requestService service.IRequestService, feedbackService service.IFeedbackService) *RequestHandler {
	return &RequestHandler{
		requestService:  requestService,
		feedbackService: feedbackService,
	}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListMyRequests)
		requests.GET("/:id", h.GetMyRequest)
		requests.POST("/:id/feedback", h.SubmitFeedback)
	}
}

// CreateRequest submits a new service request for the current user.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// ListMyRequests returns the current user's requests, optionally filtered by
// status.
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requests, err := h.requestService.ListByUser(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetMyRequest returns the detail view of one of the current user's
// requests. Requests owned by someone else yield a hard 403 regardless of
// role.
func (h *RequestHandler) GetMyRequest(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	detail, err := h.requestService.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if detail.Request.UserID != userID {
		respondError(c, service.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// SubmitFeedback rates a resolved request owned by the current user.
func (h *RequestHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req types.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.Create(c.Request.Context(), id, userID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func parseID(c *gin.Context) (uint, error) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id64), nil
}
