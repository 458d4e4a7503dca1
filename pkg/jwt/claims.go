package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin may run merges and bulk operations
const RoleAdmin = "admin"

// Claims represents JWT custom claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token carries the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
