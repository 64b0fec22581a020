package database

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/servicedesk-v2/backend/config"
	"github.com/pageza/servicedesk-v2/backend/internal/models"
)

// Migrate brings the schema up to date. AutoMigrate is additive: it creates
// missing tables, columns and indexes and never drops existing ones, which
// matches the column-patch migration history of this schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.ServiceRequest{},
		&models.RequestStatusLog{},
		&models.Feedback{},
	); err != nil {
		return err
	}
	return createCategoryNameIndex(db)
}

// createCategoryNameIndex adds the case-insensitive unique index on category
// names. It lives outside the struct tags because the index expression
// differs per driver.
func createCategoryNameIndex(db *gorm.DB) error {
	var stmt string
	switch db.Dialector.Name() {
	case "postgres":
		stmt = "CREATE UNIQUE INDEX IF NOT EXISTS idx_request_categories_name_ci ON request_categories (LOWER(name))"
	default:
		stmt = "CREATE UNIQUE INDEX IF NOT EXISTS idx_request_categories_name_ci ON request_categories (name COLLATE NOCASE)"
	}
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create category name index: %w", err)
	}
	return nil
}

// defaultCategories is the fixed bootstrap set, seeded only into an empty
// category table.
var defaultCategories = []models.Category{
	{Name: "IT Support", Description: "Technical issues, software, hardware, network problems"},
	{Name: "Facilities", Description: "Building maintenance, cleaning, repairs"},
	{Name: "Academic", Description: "Course-related issues, registration, scheduling"},
	{Name: "Administrative", Description: "Administrative requests, documentation"},
	{Name: "Financial", Description: "Billing, payments, financial aid"},
	{Name: "Other", Description: "Anything that does not fit the other categories"},
}

// Seed creates the default admin account when no ADMIN exists and seeds the
// default categories when the category table is empty.
func Seed(db *gorm.DB) error {
	var admin models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(config.DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default admin password: %w", err)
		}
		admin = models.User{
			Name:         config.DefaultAdminName,
			Email:        config.DefaultAdminEmail,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create default admin: %w", err)
		}
		log.Printf("Default admin created: %s", config.DefaultAdminEmail)
	case err != nil:
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, cat := range defaultCategories {
		cat.IsActive = true
		cat.CreatedByID = admin.ID
		if err := db.Create(&cat).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}
	log.Printf("Seeded %d default categories", len(defaultCategories))

	return nil
}
