package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/servicedesk-v2/backend/internal/models"
	"github.com/pageza/servicedesk-v2/backend/internal/types"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) IStatsService {
	return &StatsService{db: db}
}

type statusCount struct {
	Status models.RequestStatus
	Count  int64
}

// RequestStats computes the admin dashboard aggregates. Read-only; each
// grouping reflects the last committed state at query time.
func (s *StatsService) RequestStats(ctx context.Context) (*types.RequestStats, error) {
	stats := &types.RequestStats{
		ByCategory: make(map[string]int64),
		ByPriority: make(map[string]int64),
	}

	var byStatus []statusCount
	err := s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by status: %w", err)
	}
	applyStatusCounts(byStatus, &stats.Total, &stats.Submitted, &stats.InProgress, &stats.Resolved)

	// The legacy free-text category stands in for requests that predate
	// normalized categories.
	type nameCount struct {
		Name  string
		Count int64
	}
	var byCategory []nameCount
	err = s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("COALESCE(request_categories.name, service_requests.category) AS name, COUNT(*) AS count").
		Joins("LEFT JOIN request_categories ON request_categories.id = service_requests.category_id").
		Group("name").
		Scan(&byCategory).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}
	for _, row := range byCategory {
		stats.ByCategory[row.Name] = row.Count
	}

	type priorityCount struct {
		Priority models.Priority
		Count    int64
	}
	var byPriority []priorityCount
	err = s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Scan(&byPriority).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by priority: %w", err)
	}
	for _, row := range byPriority {
		if row.Priority != "" {
			stats.ByPriority[string(row.Priority)] = row.Count
		}
	}

	return stats, nil
}

// UserRequestStats computes the status counts for one user's dashboard.
func (s *StatsService) UserRequestStats(ctx context.Context, userID uint) (*types.UserRequestStats, error) {
	var byStatus []statusCount
	err := s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user requests: %w", err)
	}

	stats := &types.UserRequestStats{}
	applyStatusCounts(byStatus, &stats.Total, &stats.Submitted, &stats.InProgress, &stats.Resolved)
	return stats, nil
}

func applyStatusCounts(rows []statusCount, total, submitted, inProgress, resolved *int64) {
	for _, row := range rows {
		*total += row.Count
		switch row.Status {
		case models.StatusSubmitted:
			*submitted = row.Count
		case models.StatusInProgress:
			*inProgress = row.Count
		case models.StatusResolved:
			*resolved = row.Count
		}
	}
}
