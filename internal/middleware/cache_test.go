package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpk6432/train-station-api/internal/config"
)

func TestCaptureWriter(t *testing.T) {
	t.Run("should capture a body within the limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 64}

		_, err := cw.Write([]byte(`{"ok":true}`))
		require.NoError(t, err)

		assert.False(t, cw.overflowed())
		assert.Equal(t, `{"ok":true}`, cw.buf.String())
		assert.Equal(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("should flag overflow once writes exceed the limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

		big := strings.Repeat("x", 32)
		_, err := cw.Write([]byte(big))
		require.NoError(t, err)

		assert.True(t, cw.overflowed())
		// The client still gets the full body even though the capture stopped.
		assert.Equal(t, big, rec.Body.String())
	})

	t.Run("should not persist an overflowed capture", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}
		_, err := cw.Write([]byte(strings.Repeat("x", 32)))
		require.NoError(t, err)

		// A nil client would panic on SetEx; the early return on
		// overflow means it is never reached.
		assert.NotPanics(t, func() {
			storeInCache(nil, "k", cw, http.Header{}, 0)
		})
	})

	t.Run("should capture without bound when no limit is set", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

		big := strings.Repeat("y", 4096)
		_, err := cw.Write([]byte(big))
		require.NoError(t, err)

		assert.False(t, cw.overflowed())
		assert.Equal(t, big, cw.buf.String())
	})
}

func TestCacheKey(t *testing.T) {
	e := echo.New()
	makeCtx := func(method, query string) echo.Context {
		req := httptest.NewRequest(method, "/v1/journeys?"+query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/journeys")
		return c
	}

	t.Run("should keep a fixed prefix and hashed tail", func(t *testing.T) {
		cfg := config.CacheConfig{Prefix: "resp", KeyStrategy: "route_query"}
		key := cacheKey(cfg, makeCtx(http.MethodGet, "date=2026-09-01"))
		assert.True(t, strings.HasPrefix(key, "resp:"))
		assert.Len(t, key, len("resp:")+32)
	})

	t.Run("should vary by query under route_query", func(t *testing.T) {
		cfg := config.CacheConfig{Prefix: "resp", KeyStrategy: "route_query"}
		a := cacheKey(cfg, makeCtx(http.MethodGet, "source=1"))
		b := cacheKey(cfg, makeCtx(http.MethodGet, "source=2"))
		assert.NotEqual(t, a, b)
	})

	t.Run("should ignore the query under route", func(t *testing.T) {
		cfg := config.CacheConfig{Prefix: "resp", KeyStrategy: "route"}
		a := cacheKey(cfg, makeCtx(http.MethodGet, "source=1"))
		b := cacheKey(cfg, makeCtx(http.MethodGet, "source=2"))
		assert.Equal(t, a, b)
	})
}
