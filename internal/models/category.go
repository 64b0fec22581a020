package models

import (
	"time"
)

// Category is an admin-managed request label. Categories referenced by
// requests are never deleted, only deactivated; deactivated categories stay
// valid on historical requests but are hidden from new-request selection.
// Name uniqueness is case-insensitive; Migrate adds the collating unique
// index since the expression differs per driver.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"category_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedByID uint      `gorm:"column:created_by;not null" json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "request_categories"
}
