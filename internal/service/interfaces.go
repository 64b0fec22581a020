package service

import (
	"context"

	"github.com/pageza/servicedesk-v2/backend/internal/models"
	"github.com/pageza/servicedesk-v2/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRequestService defines the interface for the service request lifecycle
type IRequestService interface {
	Create(ctx context.Context, userID uint, req *types.CreateServiceRequestRequest) (*models.ServiceRequest, error)
	Get(ctx context.Context, id uint) (*models.ServiceRequest, error)
	Detail(ctx context.Context, id uint) (*types.RequestDetail, error)
	ListByUser(ctx context.Context, userID uint, status string) ([]models.ServiceRequest, error)
	List(ctx context.Context, filters *types.RequestFilters) ([]models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id uint, newStatus models.RequestStatus, remark string, actorID uint) (*models.ServiceRequest, error)
	UpdatePriority(ctx context.Context, id uint, newPriority models.Priority, actorID uint) (*models.ServiceRequest, error)
	Logs(ctx context.Context, requestID uint) ([]models.RequestStatusLog, error)
	RecentLogs(ctx context.Context, limit int) ([]models.RequestStatusLog, error)
}

// ICategoryService defines the interface for category management
type ICategoryService interface {
	List(ctx context.Context) ([]types.CategorySummary, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, name, description string, createdBy uint) (*models.Category, error)
	Update(ctx context.Context, id uint, name, description string) (*models.Category, error)
	ToggleActive(ctx context.Context, id uint) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	Create(ctx context.Context, requestID, userID uint, rating int, comment string) (*models.Feedback, error)
	GetByRequest(ctx context.Context, requestID uint) (*models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	Stats(ctx context.Context) (*types.FeedbackStats, error)
}

// IStatsService defines the interface for dashboard aggregations
type IStatsService interface {
	RequestStats(ctx context.Context) (*types.RequestStats, error)
	UserRequestStats(ctx context.Context, userID uint) (*types.UserRequestStats, error)
}
