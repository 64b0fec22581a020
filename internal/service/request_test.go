package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/servicedesk-v2/backend/internal/models"
	"github.com/pageza/servicedesk-v2/backend/internal/types"
)

func TestRequestCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	category := seedCategory(t, db, admin, "IT Support", true)
	inactive := seedCategory(t, db, admin, "Retired", false)

	t.Run("writes request and initial log entry together", func(t *testing.T) {
		request, err := svc.Create(ctx, user.ID, &types.CreateServiceRequestRequest{
			Title:       "Printer jam on floor 3",
			Description: "The shared printer keeps jamming on every job",
			CategoryID:  category.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusSubmitted, request.Status)
		assert.Equal(t, models.PriorityMedium, request.Priority)
		assert.Equal(t, "IT Support", request.CategoryName())

		logs, err := svc.Logs(ctx, request.ID)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Nil(t, logs[0].OldStatus)
		assert.Equal(t, models.StatusSubmitted, logs[0].NewStatus)
		assert.Equal(t, "Request created", logs[0].Remark)
		assert.Equal(t, user.ID, logs[0].UpdatedByID)
	})

	t.Run("honors a valid priority", func(t *testing.T) {
		request, err := svc.Create(ctx, user.ID, &types.CreateServiceRequestRequest{
			Title:       "VPN down for remote staff",
			Description: "Nobody outside the office can connect since this morning",
			CategoryID:  category.ID,
			Priority:    "Critical",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityCritical, request.Priority)
	})

	t.Run("unknown priority falls back to the default", func(t *testing.T) {
		request, err := svc.Create(ctx, user.ID, &types.CreateServiceRequestRequest{
			Title:       "Broken chair in meeting room",
			Description: "The chair wobbles and one wheel is missing",
			CategoryID:  category.ID,
			Priority:    "URGENT!!!",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityMedium, request.Priority)
	})

	t.Run("rejects short title", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, &types.CreateServiceRequestRequest{
			Title:       "Hi",
			Description: "This description is long enough to pass",
			CategoryID:  category.ID,
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("rejects short description", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, &types.CreateServiceRequestRequest{
			Title:       "Valid title here",
			Description: "too short",
			CategoryID:  category.ID,
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, &types.CreateServiceRequestRequest{
			Title:       "Valid title here",
			Description: "A perfectly valid description",
			CategoryID:  9999,
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("rejects inactive category", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, &types.CreateServiceRequestRequest{
			Title:       "Valid title here",
			Description: "A perfectly valid description",
			CategoryID:  inactive.ID,
		})
		assert.ErrorIs(t, err, ErrCategoryInactive)
	})
}

func TestRequestStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	category := seedCategory(t, db, admin, "IT Support", true)

	t.Run("full lifecycle appends one log entry per step", func(t *testing.T) {
		request := seedRequest(t, svc, user.ID, category.ID, "Laptop will not boot")
		assert.EqualValues(t, 1, countLogs(t, db, request.ID))

		updated, err := svc.UpdateStatus(ctx, request.ID, models.StatusInProgress, "Investigating", admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		assert.EqualValues(t, 2, countLogs(t, db, request.ID))

		updated, err = svc.UpdateStatus(ctx, request.ID, models.StatusResolved, "Replaced the battery", admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusResolved, updated.Status)
		assert.EqualValues(t, 3, countLogs(t, db, request.ID))

		logs, err := svc.Logs(ctx, request.ID)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		require.NotNil(t, logs[1].OldStatus)
		assert.Equal(t, models.StatusSubmitted, *logs[1].OldStatus)
		assert.Equal(t, models.StatusInProgress, logs[1].NewStatus)
		require.NotNil(t, logs[2].OldStatus)
		assert.Equal(t, models.StatusInProgress, *logs[2].OldStatus)
		assert.Equal(t, models.StatusResolved, logs[2].NewStatus)
	})

	t.Run("skipping a step is rejected and writes nothing", func(t *testing.T) {
		request := seedRequest(t, svc, user.ID, category.ID, "Keyboard keys sticking")

		_, err := svc.UpdateStatus(ctx, request.ID, models.StatusResolved, "Closing directly", admin.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		current, err := svc.Get(ctx, request.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSubmitted, current.Status)
		assert.EqualValues(t, 1, countLogs(t, db, request.ID))
	})

	t.Run("resolved is terminal", func(t *testing.T) {
		request := seedRequest(t, svc, user.ID, category.ID, "Monitor flickering badly")
		_, err := svc.UpdateStatus(ctx, request.ID, models.StatusInProgress, "Looking into it", admin.ID)
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, request.ID, models.StatusResolved, "Swapped the cable", admin.ID)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, request.ID, models.StatusInProgress, "Reopening", admin.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("empty remark is rejected", func(t *testing.T) {
		request := seedRequest(t, svc, user.ID, category.ID, "Mouse double clicking")
		_, err := svc.UpdateStatus(ctx, request.ID, models.StatusInProgress, "   ", admin.ID)
		assert.True(t, IsValidation(err))
		assert.EqualValues(t, 1, countLogs(t, db, request.ID))
	})

	t.Run("unknown request id", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, 9999, models.StatusInProgress, "Working on it", admin.ID)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestRequestPriorityUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	category := seedCategory(t, db, admin, "Facilities", true)

	t.Run("records the change as a same-status log entry", func(t *testing.T) {
		request := seedRequest(t, svc, user.ID, category.ID, "AC not cooling the office")

		updated, err := svc.UpdatePriority(ctx, request.ID, models.PriorityHigh, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PriorityHigh, updated.Priority)

		logs, err := svc.Logs(ctx, request.ID)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		last := logs[1]
		require.NotNil(t, last.OldStatus)
		assert.Equal(t, models.StatusSubmitted, *last.OldStatus)
		assert.Equal(t, models.StatusSubmitted, last.NewStatus)
		assert.Equal(t, "Priority changed from Medium to High", last.Remark)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		request := seedRequest(t, svc, user.ID, category.ID, "Door badge reader broken")
		_, err := svc.UpdatePriority(ctx, request.ID, "Extreme", admin.ID)
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})

	t.Run("rejects any change on a resolved request", func(t *testing.T) {
		request := seedRequest(t, svc, user.ID, category.ID, "Window latch is loose")
		_, err := svc.UpdateStatus(ctx, request.ID, models.StatusInProgress, "On it", admin.ID)
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, request.ID, models.StatusResolved, "Tightened", admin.ID)
		require.NoError(t, err)

		for _, p := range models.AllPriorities() {
			_, err := svc.UpdatePriority(ctx, request.ID, p, admin.ID)
			assert.ErrorIs(t, err, ErrRequestResolved, "priority %s", p)
		}
	})
}

func TestRequestListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	alice := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	itSupport := seedCategory(t, db, admin, "IT Support", true)
	facilities := seedCategory(t, db, admin, "Facilities", true)

	r1 := seedRequest(t, svc, alice.ID, itSupport.ID, "Email not syncing on phone")
	seedRequest(t, svc, alice.ID, facilities.ID, "Leaky faucet in kitchen")
	seedRequest(t, svc, bob.ID, itSupport.ID, "Need access to shared drive")

	_, err := svc.UpdateStatus(ctx, r1.ID, models.StatusInProgress, "Checking mail server", admin.ID)
	require.NoError(t, err)

	t.Run("list by user is scoped and newest first", func(t *testing.T) {
		requests, err := svc.ListByUser(ctx, alice.ID, "")
		require.NoError(t, err)
		require.Len(t, requests, 2)
		for _, r := range requests {
			assert.Equal(t, alice.ID, r.UserID)
		}
	})

	t.Run("status filter narrows results", func(t *testing.T) {
		requests, err := svc.ListByUser(ctx, alice.ID, string(models.StatusInProgress))
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, r1.ID, requests[0].ID)
	})

	t.Run("unknown status filter is ignored", func(t *testing.T) {
		requests, err := svc.ListByUser(ctx, alice.ID, "Closed")
		require.NoError(t, err)
		assert.Len(t, requests, 2)
	})

	t.Run("admin list supports combined filters", func(t *testing.T) {
		requests, err := svc.List(ctx, &types.RequestFilters{
			Status:   string(models.StatusSubmitted),
			Category: "IT Support",
		})
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, bob.ID, requests[0].UserID)
	})

	t.Run("admin list without filters returns everything", func(t *testing.T) {
		requests, err := svc.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, requests, 3)
	})
}

func TestRequestDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := seedUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	category := seedCategory(t, db, admin, "IT Support", true)
	request := seedRequest(t, svc, user.ID, category.ID, "Screen has dead pixels")

	detail, err := svc.Detail(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.RequestStatus{models.StatusInProgress}, detail.NextStatuses)
	assert.False(t, detail.CanSubmitFeedback)
	assert.Nil(t, detail.Feedback)
	assert.Len(t, detail.Logs, 1)

	_, err = svc.UpdateStatus(ctx, request.ID, models.StatusInProgress, "Ordered replacement", admin.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, request.ID, models.StatusResolved, "Screen replaced", admin.ID)
	require.NoError(t, err)

	detail, err = svc.Detail(ctx, request.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.NextStatuses)
	assert.True(t, detail.CanSubmitFeedback)

	_, err = svc.Detail(ctx, 9999)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
