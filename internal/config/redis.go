package config

// Redis backs the response cache on public catalog listings and the
// rate limiter on the booking endpoint.  Both features are optional:
// when no server is reachable at startup NewRedisClient returns nil and
// the middleware constructors turn themselves into no-ops.

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from the environment and verifies the
// connection with a short ping.  REDIS_URL (redis:// or rediss://)
// takes precedence; otherwise REDIS_HOST/REDIS_PORT, REDIS_ADDR,
// REDIS_PASSWORD, REDIS_DB and REDIS_TLS are consulted.  A nil return
// means "run without Redis".
func NewRedisClient() *redis.Client {
	opts := redisOptions()
	if opts == nil {
		return nil
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func redisOptions() *redis.Options {
	if url := os.Getenv("REDIS_URL"); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil
		}
		return opts
	}

	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host := os.Getenv("REDIS_HOST"); host != "" {
		addr = host + ":" + envStr("REDIS_PORT", "6379")
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	}
	if envBool("REDIS_TLS", false) {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}
