package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the TraderCheck bearer token claims. For broker tokens UserID
// is the broker id the caller acts as.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name,omitempty"`
	Roles  []string  `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Role constants
const (
	RoleAdmin  = "admin"
	RoleBroker = "broker"
)

// ValidRole reports whether role is one the service issues tokens for.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleBroker
}
