package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

// ClaimsContextKey is the echo context key holding *jwt.Claims
const ClaimsContextKey = "claims"

// TokenValidator parses and validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "claims" (*jwt.Claims) and "subject" into the Echo context
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearer(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ClaimsContextKey, claims)
			c.Set("subject", claims.Subject)

			return next(c)
		}
	}
}

// EchoAdmin is EchoAuth plus a check for the admin role
func EchoAdmin(validator TokenValidator) echo.MiddlewareFunc {
	auth := EchoAuth(validator)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims, ok := GetClaims(c)
			if !ok || !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		})
	}
}

// GetClaims retrieves the validated claims from the Echo context
func GetClaims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

func extractBearer(r *http.Request) string {
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
