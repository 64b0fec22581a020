package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/servicedesk-v2/backend/internal/models"
)

func TestRequestStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	requestSvc := NewRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	itSupport := seedCategory(t, db, admin, "IT Support", true)
	facilities := seedCategory(t, db, admin, "Facilities", true)

	r1 := seedRequest(t, requestSvc, alice.ID, itSupport.ID, "Laptop fan is very loud")
	r2 := seedRequest(t, requestSvc, alice.ID, itSupport.ID, "Need a second monitor")
	seedRequest(t, requestSvc, bob.ID, facilities.ID, "Office plant is dying")

	_, err := requestSvc.UpdateStatus(ctx, r1.ID, models.StatusInProgress, "Checking fan", admin.ID)
	require.NoError(t, err)
	_, err = requestSvc.UpdateStatus(ctx, r2.ID, models.StatusInProgress, "Ordering", admin.ID)
	require.NoError(t, err)
	_, err = requestSvc.UpdateStatus(ctx, r2.ID, models.StatusResolved, "Monitor delivered", admin.ID)
	require.NoError(t, err)
	_, err = requestSvc.UpdatePriority(ctx, r1.ID, models.PriorityHigh, admin.ID)
	require.NoError(t, err)

	t.Run("system-wide aggregates", func(t *testing.T) {
		stats, err := svc.RequestStats(ctx)
		require.NoError(t, err)

		assert.EqualValues(t, 3, stats.Total)
		assert.EqualValues(t, 1, stats.Submitted)
		assert.EqualValues(t, 1, stats.InProgress)
		assert.EqualValues(t, 1, stats.Resolved)

		assert.EqualValues(t, 2, stats.ByCategory["IT Support"])
		assert.EqualValues(t, 1, stats.ByCategory["Facilities"])

		assert.EqualValues(t, 2, stats.ByPriority[string(models.PriorityMedium)])
		assert.EqualValues(t, 1, stats.ByPriority[string(models.PriorityHigh)])
	})

	t.Run("per-user aggregates are scoped", func(t *testing.T) {
		stats, err := svc.UserRequestStats(ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stats.Total)
		assert.EqualValues(t, 0, stats.Submitted)
		assert.EqualValues(t, 1, stats.InProgress)
		assert.EqualValues(t, 1, stats.Resolved)

		stats, err = svc.UserRequestStats(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.Total)
		assert.EqualValues(t, 1, stats.Submitted)
	})

	t.Run("empty user", func(t *testing.T) {
		stats, err := svc.UserRequestStats(ctx, 9999)
		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.Total)
	})
}

func TestRequestStatsLegacyCategoryText(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	user := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	// Rows that predate normalized categories carry only the free-text value.
	legacy := models.ServiceRequest{
		UserID:      user.ID,
		Title:       "Imported from the old system",
		Description: "Carried over during migration",
		Category:    "Legacy Imports",
		Priority:    models.PriorityLow,
		Status:      models.StatusSubmitted,
	}
	require.NoError(t, db.Create(&legacy).Error)

	stats, err := svc.RequestStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ByCategory["Legacy Imports"])
}

func TestRecentLogs(t *testing.T) {
	db := newTestDB(t)
	requestSvc := NewRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	category := seedCategory(t, db, admin, "IT Support", true)

	request := seedRequest(t, requestSvc, alice.ID, category.ID, "Phone screen cracked")
	_, err := requestSvc.UpdateStatus(ctx, request.ID, models.StatusInProgress, "Sent for repair", admin.ID)
	require.NoError(t, err)

	logs, err := requestSvc.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.StatusInProgress, logs[0].NewStatus)
	require.NotNil(t, logs[0].Request)
	assert.Equal(t, request.ID, logs[0].Request.ID)

	limited, err := requestSvc.RecentLogs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
