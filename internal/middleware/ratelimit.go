package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rpk6432/train-station-api/internal/config"
)

// tokenBucketScript refills and drains one bucket atomically.  State is
// a Redis hash keyed per client; the refill is computed lazily from the
// elapsed time instead of a background ticker, so idle buckets cost
// nothing.  Returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
	local now      = tonumber(ARGV[1])
	local cap      = tonumber(ARGV[2])
	local refill   = tonumber(ARGV[3])
	local interval = tonumber(ARGV[4])
	local ttl      = tonumber(ARGV[5])

	local tokens = tonumber(redis.call('HGET', KEYS[1], 't'))
	local stamp  = tonumber(redis.call('HGET', KEYS[1], 'ts'))
	if not tokens or not stamp then
		tokens = cap
		stamp = now
	end

	if interval > 0 and refill > 0 and now > stamp then
		local steps = math.floor((now - stamp) / interval)
		if steps > 0 then
			tokens = math.min(cap, tokens + steps * refill)
			stamp = stamp + steps * interval
		end
	end

	local allowed = 0
	local wait = 0
	if tokens >= 1 then
		allowed = 1
		tokens = tokens - 1
	else
		wait = math.max(0, interval - (now - stamp))
	end

	redis.call('HSET', KEYS[1], 't', tokens, 'ts', stamp)
	redis.call('EXPIRE', KEYS[1], ttl)
	return {allowed, tokens, wait}
`)

// bucketResult is the decoded script reply.
type bucketResult struct {
	allowed   bool
	remaining int64
	retryMs   int64
}

// parseBucketResult decodes the Lua reply.  redis returns Lua numbers
// as int64 but the types are worth guarding against.
func parseBucketResult(v interface{}) (bucketResult, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 3 {
		return bucketResult{}, false
	}
	n := make([]int64, 3)
	for i, elem := range arr {
		switch t := elem.(type) {
		case int64:
			n[i] = t
		case string:
			parsed, err := strconv.ParseInt(t, 10, 64)
			if err != nil {
				return bucketResult{}, false
			}
			n[i] = parsed
		default:
			return bucketResult{}, false
		}
	}
	return bucketResult{allowed: n[0] == 1, remaining: n[1], retryMs: n[2]}, true
}

// rateKey names the bucket a request draws from.  The strategy picks
// which request attributes isolate clients from each other.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	user := rateLimitIdentity(c)
	route := c.Request().Method + " " + c.Path()

	var tail string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		tail = "ip:" + ip
	case "user":
		tail = "user:" + user
	case "route":
		tail = "route:" + route
	case "ip_user":
		tail = "ip:" + ip + ":user:" + user
	case "ip_route":
		tail = "ip:" + ip + ":route:" + route
	case "user_route":
		tail = "user:" + user + ":route:" + route
	default:
		tail = "ip:" + ip + ":user:" + user + ":route:" + route
	}
	return cfg.Prefix + ":" + tail
}

// rateLimitIdentity reads the authenticated user from context.  The sub
// claim decodes as a float64; requests without one share "anon".
func rateLimitIdentity(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case string:
		if v != "" {
			return v
		}
	}
	return "anon"
}

// NewTokenBucket returns a Redis-backed token bucket rate limiter.
// Bucket state is shared through Redis, so several API instances drain
// a single budget per key.  Redis errors fail open and the request
// proceeds unthrottled.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(cfg, c)
			args := []interface{}{
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL / time.Second),
			}

			raw, err := tokenBucketScript.Run(c.Request().Context(), rdb, []string{key}, args...).Result()
			if err != nil {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] redis error for key=%s: %v", key, err)
				}
				return next(c)
			}
			res, ok := parseBucketResult(raw)
			if !ok {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] unexpected script result for key=%s: %#v", key, raw)
				}
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))

			if !res.allowed {
				secs := int(math.Ceil(float64(res.retryMs) / 1000.0))
				h.Set("Retry-After", strconv.Itoa(secs))
				if cfg.Debug {
					c.Logger().Infof("[ratelimit] block key=%s retry=%dms", key, res.retryMs)
				}
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":       "too_many_requests",
					"message":     "rate limit exceeded",
					"retry_after": secs,
				})
			}

			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			return next(c)
		}
	}
}
