package types

import (
	"github.com/pageza/servicedesk-v2/backend/internal/models"
)

// TokenClaims is the authenticated actor context extracted from a JWT. It is
// the only identity information the core layers consume.
type TokenClaims struct {
	UserID uint
	Role   models.Role
}
