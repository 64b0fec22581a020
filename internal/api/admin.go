package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/servicedesk-v2/backend/internal/middleware"
	"github.com/pageza/servicedesk-v2/backend/internal/models"
	"github.com/pageza/servicedesk-v2/backend/internal/service"
	"github.com/pageza/servicedesk-v2/backend/internal/types"
)

// AdminHandler serves request triage for administrators: listing, detail,
// lifecycle transitions and priority changes.
type AdminHandler struct {
	requestService service.IRequestService
}

func NewAdminHandler(requestService service.IRequestService) *AdminHandler {
	return &AdminHandler{requestService: requestService}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)
		requests.PUT("/:id/status", h.UpdateStatus)
		requests.PUT("/:id/priority", h.UpdatePriority)
	}
}

// ListRequests returns all requests with optional status, category and
// priority filters.
func (h *AdminHandler) ListRequests(c *gin.Context) {
	var filters types.RequestFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requests, err := h.requestService.List(c.Request.Context(), &filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetRequest returns the detail view of any request.
func (h *AdminHandler) GetRequest(c *gin.Context) {
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

	c.JSON(http.StatusOK, detail)
}

// UpdateStatus applies a lifecycle transition with a mandatory remark.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req types.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.requestService.UpdateStatus(c.Request.Context(), id, models.RequestStatus(req.Status), req.Remark, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// UpdatePriority changes the priority of a non-resolved request.
func (h *AdminHandler) UpdatePriority(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req types.UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.requestService.UpdatePriority(c.Request.Context(), id, models.Priority(req.Priority), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}
