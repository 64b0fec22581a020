package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/servicedesk-v2/backend/internal/middleware"
	"github.com/pageza/servicedesk-v2/backend/internal/service"
)

// DashboardHandler serves the user and admin dashboard aggregates.
type DashboardHandler struct {
	statsService    service.IStatsService
	requestService  service.IRequestService
	feedbackService service.IFeedbackService
	categoryService service.ICategoryService
}

func NewDashboardHandler(
	statsService service.IStatsService,
	requestService service.IRequestService,
	feedbackService service.IFeedbackService,
	categoryService service.ICategoryService,
) *DashboardHandler {
	return &DashboardHandler{
		statsService:    statsService,
		requestService:  requestService,
		feedbackService: feedbackService,
		categoryService: categoryService,
	}
}

func (h *DashboardHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.UserDashboard)
}

func (h *DashboardHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.AdminDashboard)
}

// UserDashboard returns the current user's status counts and most recent
// requests.
func (h *DashboardHandler) UserDashboard(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	stats, err := h.statsService.UserRequestStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	recent, err := h.requestService.ListByUser(c.Request.Context(), userID, "")
	if err != nil {
		respondError(c, err)
		return
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"recent_requests": recent,
	})
}

// AdminDashboard returns the global aggregates, feedback summary, category
// overview and recent audit activity.
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	stats, err := h.statsService.RequestStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	feedbackStats, err := h.feedbackService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	recentActivity, err := h.requestService.RecentLogs(c.Request.Context(), 10)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"feedback_stats":  feedbackStats,
		"categories":      categories,
		"recent_activity": recentActivity,
	})
}
