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

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) ICategoryService {
	return &CategoryService{db: db}
}

// List returns every category with its creator name and usage count, for
// admin management.
func (s *CategoryService) List(ctx context.Context) ([]types.CategorySummary, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	summaries := make([]types.CategorySummary, 0, len(categories))
	for _, cat := range categories {
		count, err := s.usageCount(ctx, s.db, cat.ID)
		if err != nil {
			return nil, err
		}
		summary := types.CategorySummary{Category: cat, UsageCount: count}
		if cat.CreatedBy != nil {
			summary.CreatorName = cat.CreatedBy.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListActive returns only active categories, for the new-request selection.
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create adds a category. Names are trimmed and must be unique
// case-insensitively; the lookup gives a precise error and the collating
// unique index is the backstop for racing writes.
func (s *CategoryService) Create(ctx context.Context, name, description string, createdBy uint) (*models.Category, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if len(name) < 2 {
		return nil, ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}

	taken, err := s.nameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateCategory
	}

	category := models.Category{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedByID: createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return &category, nil
}

// Update renames a category, with the duplicate check excluding itself.
func (s *CategoryService) Update(ctx context.Context, id uint, name, description string) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if len(name) < 2 {
		return nil, ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}

	taken, err := s.nameExists(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateCategory
	}

	updates := map[string]interface{}{
		"name":        name,
		"description": description,
	}
	if err := s.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return category, nil
}

// ToggleActive flips the soft-disable flag. Always permitted; deactivated
// categories stay valid on historical requests.
func (s *CategoryService) ToggleActive(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(category).Update("is_active", !category.IsActive).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category only when no request references it. The usage
// check and the delete run in one transaction so a request created
// concurrently cannot be orphaned.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		count, err := s.usageCount(ctx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}

		return tx.Delete(&category).Error
	})
}

func (s *CategoryService) usageCount(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("category_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count category usage: %w", err)
	}
	return count, nil
}

func (s *CategoryService) nameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}
