package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpk6432/train-station-api/internal/middleware"
	"github.com/rpk6432/train-station-api/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/v1/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, mw...)
	return e
}

func TestJWTAuth(t *testing.T) {
	t.Run("should reject a request without a bearer token", func(t *testing.T) {
		e := protectedEcho(middleware.JWTAuth(testSecret))
		req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("wrong-secret", 7, "CUSTOMER", 15)
		require.NoError(t, err)

		e := protectedEcho(middleware.JWTAuth(testSecret))
		req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should expose sub and role to the handler", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 15)
		require.NoError(t, err)

		e := protectedEcho(middleware.JWTAuth(testSecret))
		req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		// Numeric claims round-trip through JSON, so sub comes back as a number.
		assert.Contains(t, rec.Body.String(), `"user_id":7`)
		assert.Contains(t, rec.Body.String(), `"role":"CUSTOMER"`)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("should block a customer on an admin route", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 15)
		require.NoError(t, err)

		e := protectedEcho(middleware.JWTAuth(testSecret), middleware.RequireRole("ADMIN"))
		req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should admit an admin", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 7, "ADMIN", 15)
		require.NoError(t, err)

		e := protectedEcho(middleware.JWTAuth(testSecret), middleware.RequireRole("ADMIN"))
		req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should treat a missing role as forbidden", func(t *testing.T) {
		e := echo.New()
		e.GET("/v1/ping", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}, middleware.RequireRole("ADMIN"))
		req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
