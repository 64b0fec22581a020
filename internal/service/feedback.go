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

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) IFeedbackService {
	return &FeedbackService{db: db}
}

// Create submits feedback for a resolved request. Every precondition is
// re-checked at write time, inside the transaction, regardless of what the
// caller already verified; the unique index on request_id is the final
// backstop. The failure modes are distinct and checked in order: request
// exists, request resolved, actor owns it, no prior feedback, rating in
// range.
func (s *FeedbackService) Create(ctx context.Context, requestID, userID uint, rating int, comment string) (*models.Feedback, error) {
	feedback := models.Feedback{
		RequestID: requestID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.ServiceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if !request.IsResolved() {
			return ErrRequestNotResolved
		}
		if request.UserID != userID {
			return ErrForbidden
		}

		var count int64
		if err := tx.Model(&models.Feedback{}).Where("request_id = ?", requestID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrFeedbackExists
		}

		if rating < 1 || rating > 5 {
			return ErrInvalidRating
		}

		if err := tx.Create(&feedback).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFeedbackExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &feedback, nil
}

// GetByRequest returns the feedback for a request, or nil when none exists.
func (s *FeedbackService) GetByRequest(ctx context.Context, requestID uint) (*models.Feedback, error) {
	var feedback models.Feedback
	err := s.db.WithContext(ctx).Where("request_id = ?", requestID).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

// ListAll returns every feedback row with its request and submitting user,
// newest first, for the admin view.
func (s *FeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.db.WithContext(ctx).
		Preload("Request").
		Preload("User").
		Order("submitted_at DESC, id DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

// Stats returns the rating distribution and mean, rounded to two decimals.
func (s *FeedbackService) Stats(ctx context.Context) (*types.FeedbackStats, error) {
	stats := &types.FeedbackStats{ByRating: make(map[int]int64)}

	type ratingCount struct {
		Rating int
		Count  int64
	}
	var rows []ratingCount
	err := s.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate feedback: %w", err)
	}

	var sum int64
	for _, row := range rows {
		stats.ByRating[row.Rating] = row.Count
		stats.Total += row.Count
		sum += int64(row.Rating) * row.Count
	}
	if stats.Total > 0 {
		avg := float64(sum) / float64(stats.Total)
		stats.AverageRating = float64(int(avg*100+0.5)) / 100
	}

	return stats, nil
}
