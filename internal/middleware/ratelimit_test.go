package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpk6432/train-station-api/internal/config"
)

func newRateContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
	req.RemoteAddr = "10.0.0.9:4242"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/orders")
	return c
}

func TestRateKey(t *testing.T) {
	t.Run("should bucket authenticated users by their id", func(t *testing.T) {
		c := newRateContext(t)
		c.Set("user_id", float64(7))

		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
		assert.Equal(t, "rl:user:7", rateKey(cfg, c))
	})

	t.Run("should fall back to anon without a user claim", func(t *testing.T) {
		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
		assert.Equal(t, "rl:user:anon", rateKey(cfg, newRateContext(t)))
	})

	t.Run("should combine ip, user and route by default", func(t *testing.T) {
		c := newRateContext(t)
		c.Set("user_id", float64(7))

		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: ""}
		assert.Equal(t, "rl:ip:10.0.0.9:user:7:route:POST /v1/orders", rateKey(cfg, c))
	})
}

func TestParseBucketResult(t *testing.T) {
	t.Run("should decode an allow reply", func(t *testing.T) {
		res, ok := parseBucketResult([]interface{}{int64(1), int64(4), int64(0)})
		require.True(t, ok)
		assert.True(t, res.allowed)
		assert.Equal(t, int64(4), res.remaining)
	})

	t.Run("should decode a block reply with retry delay", func(t *testing.T) {
		res, ok := parseBucketResult([]interface{}{int64(0), int64(0), int64(1500)})
		require.True(t, ok)
		assert.False(t, res.allowed)
		assert.Equal(t, int64(1500), res.retryMs)
	})

	t.Run("should reject malformed replies", func(t *testing.T) {
		_, ok := parseBucketResult("nope")
		assert.False(t, ok)
		_, ok = parseBucketResult([]interface{}{int64(1)})
		assert.False(t, ok)
	})
}
