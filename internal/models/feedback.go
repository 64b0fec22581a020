package models

import (
	"time"
)

// Feedback is a user satisfaction rating for a resolved request. At most one
// row exists per request (unique index on RequestID); once written it is
// immutable.
type Feedback struct {
	ID        uint            `gorm:"primarykey" json:"feedback_id"`
	RequestID uint            `gorm:"not null;uniqueIndex" json:"request_id"`
	Request   *ServiceRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	UserID    uint            `gorm:"not null" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    int             `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string          `gorm:"type:text" json:"comment"`
	CreatedAt time.Time       `gorm:"column:submitted_at" json:"submitted_at"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "request_feedback"
}
