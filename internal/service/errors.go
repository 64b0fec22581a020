package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for every recoverable failure mode. Handlers translate
// these into HTTP statuses; anything else is treated as an unexpected
// storage failure and surfaced as a generic 500.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")

	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidPriority   = errors.New("invalid priority level")
	ErrRequestResolved   = errors.New("request is already resolved")

	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryInactive  = errors.New("selected category is no longer available")
	ErrCategoryInUse     = errors.New("category is in use and cannot be deleted")
	ErrDuplicateCategory = errors.New("category name already exists")

	ErrForbidden = errors.New("you do not have permission to access this resource")

	ErrRequestNotResolved = errors.New("feedback can only be submitted for resolved requests")
	ErrFeedbackExists     = errors.New("feedback has already been submitted for this request")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)

// ValidationError reports malformed or out-of-range input for a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a field validation error.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
