package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rpk6432/train-station-api/internal/config"
)

// cachedResponse is the stored form of a reply.  Status, headers and
// body travel together so a hit can be replayed byte for byte.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// captureWriter tees the response body into a bounded buffer while
// streaming it to the client.  Writes past the limit still reach the
// client but are not buffered; overflowed() reports that the capture
// is incomplete and must not be cached.
type captureWriter struct {
	http.ResponseWriter
	status  int
	limit   int64
	written int64
	buf     bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(p []byte) (int, error) {
	if !cw.overflowed() {
		if room := cw.limit - cw.written; cw.limit <= 0 || int64(len(p)) <= room {
			cw.buf.Write(p)
		} else {
			cw.buf.Write(p[:room])
		}
	}
	cw.written += int64(len(p))
	return cw.ResponseWriter.Write(p)
}

func (cw *captureWriter) overflowed() bool {
	return cw.limit > 0 && cw.written > cw.limit
}

// cacheKey derives a fixed-length Redis key from the request under the
// configured strategy.  Hashing keeps query strings out of the keyspace.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var ident string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		ident = c.Path()
	case "method_route":
		ident = r.Method + " " + c.Path()
	case "method_route_query":
		ident = r.Method + " " + c.Path() + "?" + r.URL.RawQuery
	default: // "route_query"
		ident = c.Path() + "?" + r.URL.RawQuery
	}
	sum := sha256.Sum256([]byte(ident))
	return cfg.Prefix + ":" + hex.EncodeToString(sum[:16])
}

// serveFromCache replays a stored response.  It reports false when the
// key is absent or the stored value does not decode.
func serveFromCache(ctx context.Context, rdb *redis.Client, key string, c echo.Context) bool {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	var cached cachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		return false
	}
	h := c.Response().Header()
	for name, vals := range cached.Header {
		// Echo sets Content-Length from the actual write.
		if strings.EqualFold(name, "Content-Length") {
			continue
		}
		for _, v := range vals {
			h.Add(name, v)
		}
	}
	h.Set("X-Cache", "HIT")
	c.Response().WriteHeader(cached.Status)
	if len(cached.Body) > 0 {
		_, _ = c.Response().Write(cached.Body)
	}
	return true
}

// storeInCache persists a fully captured 200 response.  Responses that
// overflowed the capture buffer are skipped entirely; caching a cut-off
// body would serve broken JSON for the whole TTL.
func storeInCache(rdb *redis.Client, key string, cw *captureWriter, header http.Header, ttl time.Duration) {
	if cw.status != http.StatusOK || cw.overflowed() {
		return
	}
	cached := cachedResponse{
		Status: cw.status,
		Header: header.Clone(),
		Body:   cw.buf.Bytes(),
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		return
	}
	_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
}

// NewRedisCache caches successful responses for the configured methods.
// With caching disabled or no Redis client the middleware is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			key := cacheKey(cfg, c)
			if serveFromCache(c.Request().Context(), rdb, key, c) {
				return nil
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			storeInCache(rdb, key, cw, c.Response().Header(), ttl)
			return nil
		}
	}
}
