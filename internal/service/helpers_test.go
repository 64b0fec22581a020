package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/servicedesk-v2/backend/internal/models"
	"github.com/pageza/servicedesk-v2/backend/internal/testdb"
	"github.com/pageza/servicedesk-v2/backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testdb.New(t)
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, admin *models.User, name string, active bool) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:        name,
		IsActive:    active,
		CreatedByID: admin.ID,
	}
	require.NoError(t, db.Create(category).Error)
	if !active {
		// The model's `default:true` tag makes GORM drop a zero-value false
		// on insert, so persist the flag explicitly.
		require.NoError(t, db.Model(category).Update("is_active", false).Error)
	}
	return category
}

func seedRequest(t *testing.T, svc IRequestService, userID, categoryID uint, title string) *models.ServiceRequest {
	t.Helper()
	request, err := svc.Create(context.Background(), userID, &types.CreateServiceRequestRequest{
		Title:       title,
		Description: "something is broken and needs attention",
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	return request
}

func countLogs(t *testing.T, db *gorm.DB, requestID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.RequestStatusLog{}).Where("request_id = ?", requestID).Count(&count).Error)
	return count
}
