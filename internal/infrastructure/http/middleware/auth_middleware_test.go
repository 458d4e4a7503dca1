package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

func TestEchoAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour, "meeting-minutes")
	ok := func(c echo.Context) error {
		claims, _ := GetClaims(c)
		return c.String(http.StatusOK, claims.Subject)
	}

	call := func(header string) (*httptest.ResponseRecorder, error) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/entities/merge", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		err := EchoAdmin(manager)(ok)(e.NewContext(req, rec))
		return rec, err
	}

	statusOf := func(t *testing.T, err error) int {
		t.Helper()
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		return he.Code
	}

	t.Run("missing token", func(t *testing.T) {
		_, err := call("")
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := call("Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("non-admin role", func(t *testing.T) {
		token, err := manager.GenerateToken("viewer", "viewer")
		require.NoError(t, err)
		_, err = call("Bearer " + token)
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := manager.GenerateToken("ops", jwt.RoleAdmin)
		require.NoError(t, err)
		rec, err := call("bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ops", rec.Body.String())
	})
}
