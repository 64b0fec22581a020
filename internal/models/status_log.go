package models

import (
	"time"
)

// RequestStatusLog is one append-only audit row. Rows are inserted in the
// same transaction as the request mutation they record and are never updated
// or deleted. OldStatus is nil only for the creation entry. Priority changes
// are recorded as same-status rows whose remark describes the change.
type RequestStatusLog struct {
	ID          uint            `gorm:"primarykey" json:"log_id"`
	RequestID   uint            `gorm:"not null;index" json:"request_id"`
	Request     *ServiceRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	OldStatus   *RequestStatus  `gorm:"type:varchar(16)" json:"old_status"`
	NewStatus   RequestStatus   `gorm:"type:varchar(16);not null" json:"new_status"`
	Remark      string          `gorm:"type:text" json:"remark"`
	UpdatedByID uint            `gorm:"column:updated_by;not null" json:"updated_by"`
	UpdatedBy   *User           `gorm:"foreignKey:UpdatedByID" json:"updated_by_user,omitempty"`
	CreatedAt   time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name for the RequestStatusLog model
func (RequestStatusLog) TableName() string {
	return "request_status_log"
}
