package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/servicedesk-v2/backend/internal/models"
	"github.com/pageza/servicedesk-v2/backend/internal/types"
)

const creationRemark = "Request created"

type RequestService struct {
	db *gorm.DB
}

func NewRequestService(db *gorm.DB) IRequestService {
	return &RequestService{db: db}
}

// Create validates input, then writes the request row and its initial audit
// log entry in one transaction.
func (s *RequestService) Create(ctx context.Context, userID uint, req *types.CreateServiceRequestRequest) (*models.ServiceRequest, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if len(title) < 5 {
		return nil, ValidationError{Field: "title", Message: "must be at least 5 characters"}
	}
	if len(description) < 10 {
		return nil, ValidationError{Field: "description", Message: "must be at least 10 characters"}
	}

	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, ErrCategoryInactive
	}

	// Unknown or empty priority falls back to the default rather than
	// failing; request creation has always been lenient here.
	priority := models.Priority(strings.TrimSpace(req.Priority))
	if !priority.Valid() {
		priority = models.DefaultPriority
	}

	request := models.ServiceRequest{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category.Name,
		CategoryID:  &category.ID,
		Priority:    priority,
		Status:      models.StatusSubmitted,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		entry := models.RequestStatusLog{
			RequestID:   request.ID,
			OldStatus:   nil,
			NewStatus:   models.StatusSubmitted,
			Remark:      creationRemark,
			UpdatedByID: userID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, request.ID)
}

// Get loads a request with its owner and normalized category.
func (s *RequestService) Get(ctx context.Context, id uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("CategoryRef").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// Detail assembles the request view: audit trail, feedback and the valid
// next transitions.
func (s *RequestService) Detail(ctx context.Context, id uint) (*types.RequestDetail, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	logs, err := s.Logs(ctx, id)
	if err != nil {
		return nil, err
	}

	var feedback *models.Feedback
	var fb models.Feedback
	err = s.db.WithContext(ctx).Where("request_id = ?", id).First(&fb).Error
	switch {
	case err == nil:
		feedback = &fb
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return &types.RequestDetail{
		Request:           request,
		Logs:              logs,
		Feedback:          feedback,
		NextStatuses:      models.NextStatuses(request.Status),
		CanSubmitFeedback: request.IsResolved() && feedback == nil,
	}, nil
}

// ListByUser returns a user's requests, newest first, optionally narrowed by
// status. Unknown status values are ignored.
func (s *RequestService) ListByUser(ctx context.Context, userID uint, status string) ([]models.ServiceRequest, error) {
	query := s.db.WithContext(ctx).
		Preload("User").
		Preload("CategoryRef").
		Where("user_id = ?", userID)

	if st := models.RequestStatus(status); st.Valid() {
		query = query.Where("status = ?", st)
	}

	var requests []models.ServiceRequest
	if err := query.Order("created_at DESC, id DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// List returns all requests for admin triage, newest first. The category
// filter matches either the normalized category name or the legacy free-text
// value; unknown status/priority filter values are ignored.
func (s *RequestService) List(ctx context.Context, filters *types.RequestFilters) ([]models.ServiceRequest, error) {
	query := s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Preload("User").
		Preload("CategoryRef")

	if filters != nil {
		if st := models.RequestStatus(filters.Status); st.Valid() {
			query = query.Where("status = ?", st)
		}
		if p := models.Priority(filters.Priority); p.Valid() {
			query = query.Where("priority = ?", p)
		}
		if filters.Category != "" {
			query = query.
				Joins("LEFT JOIN request_categories ON request_categories.id = service_requests.category_id").
				Where("service_requests.category = ? OR request_categories.name = ?", filters.Category, filters.Category)
		}
	}

	var requests []models.ServiceRequest
	if err := query.Order("service_requests.created_at DESC, service_requests.id DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus applies a lifecycle transition. The status change and its
// audit log entry commit as one unit; on any precondition failure nothing is
// written.
func (s *RequestService) UpdateStatus(ctx context.Context, id uint, newStatus models.RequestStatus, remark string, actorID uint) (*models.ServiceRequest, error) {
	remark = strings.TrimSpace(remark)
	if remark == "" {
		return nil, ValidationError{Field: "remark", Message: "a remark explaining the status change is required"}
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.ServiceRequest
		if err := tx.First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if !request.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, newStatus)
		}

		oldStatus := request.Status
		if err := tx.Model(&request).Update("status", newStatus).Error; err != nil {
			return err
		}

		entry := models.RequestStatusLog{
			RequestID:   request.ID,
			OldStatus:   &oldStatus,
			NewStatus:   newStatus,
			Remark:      remark,
			UpdatedByID: actorID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// UpdatePriority changes the priority of a non-resolved request. The audit
// trail records it as a same-status entry whose remark describes the change.
func (s *RequestService) UpdatePriority(ctx context.Context, id uint, newPriority models.Priority, actorID uint) (*models.ServiceRequest, error) {
	if !newPriority.Valid() {
		return nil, ErrInvalidPriority
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.ServiceRequest
		if err := tx.First(&request, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.IsResolved() {
			return ErrRequestResolved
		}

		oldPriority := request.Priority
		if err := tx.Model(&request).Update("priority", newPriority).Error; err != nil {
			return err
		}

		status := request.Status
		entry := models.RequestStatusLog{
			RequestID:   request.ID,
			OldStatus:   &status,
			NewStatus:   status,
			Remark:      fmt.Sprintf("Priority changed from %s to %s", oldPriority, newPriority),
			UpdatedByID: actorID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Logs returns the audit trail for a request in chronological order.
func (s *RequestService) Logs(ctx context.Context, requestID uint) ([]models.RequestStatusLog, error) {
	var logs []models.RequestStatusLog
	err := s.db.WithContext(ctx).
		Preload("UpdatedBy").
		Where("request_id = ?", requestID).
		Order("updated_at ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status log: %w", err)
	}
	return logs, nil
}

// RecentLogs returns the most recent audit entries across all requests, for
// the admin dashboard activity feed.
func (s *RequestService) RecentLogs(ctx context.Context, limit int) ([]models.RequestStatusLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var logs []models.RequestStatusLog
	err := s.db.WithContext(ctx).
		Preload("UpdatedBy").
		Preload("Request").
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	return logs, nil
}
