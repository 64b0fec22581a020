package types

import (
	"github.com/pageza/servicedesk-v2/backend/internal/models"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned from register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// CreateServiceRequestRequest represents the request body for submitting a
// new service request. Priority is optional; unknown values fall back to the
// default rather than failing, matching historical behavior.
type CreateServiceRequestRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Priority    string `json:"priority"`
}

// UpdateStatusRequest represents the request body for a lifecycle transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Remark string `json:"remark" binding:"required"`
}

// UpdatePriorityRequest represents the request body for a priority change
type UpdatePriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents the request body for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SubmitFeedbackRequest represents the request body for rating a resolved
// request
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// RequestFilters narrows admin request listings. Unknown filter values are
// ignored rather than rejected.
type RequestFilters struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Priority string `form:"priority"`
}

// RequestDetail bundles a request with its audit trail and feedback state
type RequestDetail struct {
	Request           *models.ServiceRequest    `json:"request"`
	Logs              []models.RequestStatusLog `json:"logs"`
	Feedback          *models.Feedback          `json:"feedback,omitempty"`
	NextStatuses      []models.RequestStatus    `json:"next_statuses"`
	CanSubmitFeedback bool                      `json:"can_submit_feedback"`
}

// CategorySummary is the admin category listing row
type CategorySummary struct {
	models.Category
	CreatorName string `json:"creator_name"`
	UsageCount  int64  `json:"usage_count"`
}

// RequestStats is the admin dashboard aggregate
type RequestStats struct {
	Total      int64            `json:"total"`
	Submitted  int64            `json:"submitted"`
	InProgress int64            `json:"in_progress"`
	Resolved   int64            `json:"resolved"`
	ByCategory map[string]int64 `json:"by_category"`
	ByPriority map[string]int64 `json:"by_priority"`
}

// UserRequestStats is the per-user dashboard aggregate
type UserRequestStats struct {
	Total      int64 `json:"total"`
	Submitted  int64 `json:"submitted"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}

// FeedbackStats summarizes the rating distribution
type FeedbackStats struct {
	Total         int64         `json:"total"`
	AverageRating float64       `json:"average_rating"`
	ByRating      map[int]int64 `json:"by_rating"`
}
