package models

import (
	"time"
)

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	StatusSubmitted  RequestStatus = "Submitted"
	StatusInProgress RequestStatus = "In Progress"
	StatusResolved   RequestStatus = "Resolved"
)

// Priority is the urgency level of a service request.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"

	DefaultPriority = PriorityMedium
)

// statusTransitions is the fixed forward-only transition table. Resolved is
// terminal. The map is never mutated after init; callers go through
// NextStatuses and CanTransition.
var statusTransitions = map[RequestStatus][]RequestStatus{
	StatusSubmitted:  {StatusInProgress},
	StatusInProgress: {StatusResolved},
	StatusResolved:   {},
}

// AllStatuses lists the defined statuses in lifecycle order.
func AllStatuses() []RequestStatus {
	return []RequestStatus{StatusSubmitted, StatusInProgress, StatusResolved}
}

// AllPriorities lists the defined priority levels.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Valid reports whether s is one of the defined statuses.
func (s RequestStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Valid reports whether p is one of the defined priority levels.
func (p Priority) Valid() bool {
	for _, level := range AllPriorities() {
		if p == level {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the valid successor statuses for s.
func NextStatuses(s RequestStatus) []RequestStatus {
	next := statusTransitions[s]
	out := make([]RequestStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is a legal lifecycle transition.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ServiceRequest is a user-submitted service request. Category holds the
// legacy free-text category name kept for backward compatibility; CategoryID
// points at the normalized category row.
type ServiceRequest struct {
	ID          uint          `gorm:"primarykey" json:"request_id"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	User        *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Category    string        `gorm:"not null" json:"category"`
	CategoryID  *uint         `gorm:"index" json:"category_id,omitempty"`
	CategoryRef *Category     `gorm:"foreignKey:CategoryID" json:"category_ref,omitempty"`
	Priority    Priority      `gorm:"type:varchar(16);not null;default:'Medium';index;check:priority IN ('Low','Medium','High','Critical')" json:"priority"`
	Status      RequestStatus `gorm:"type:varchar(16);not null;default:'Submitted';index;check:status IN ('Submitted','In Progress','Resolved')" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName returns the table name for the ServiceRequest model
func (ServiceRequest) TableName() string {
	return "service_requests"
}

// IsResolved reports whether the request has reached its terminal state.
func (r *ServiceRequest) IsResolved() bool {
	return r.Status == StatusResolved
}

// CanTransitionTo reports whether the request may move to status.
func (r *ServiceRequest) CanTransitionTo(status RequestStatus) bool {
	return CanTransition(r.Status, status)
}

// CategoryName returns the normalized category name, falling back to the
// legacy free-text value for requests created before categories were
// normalized.
func (r *ServiceRequest) CategoryName() string {
	if r.CategoryRef != nil && r.CategoryRef.Name != "" {
		return r.CategoryRef.Name
	}
	return r.Category
}
