package middleware

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"
)

// RateLimitConfig configures the per-IP request limiter.
type RateLimitConfig struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage
}

// RateLimit limits requests per client IP. A zero Max disables limiting.
// With a nil Storage counters are kept in memory.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "ratelimit:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests")
		},
	})
}

// NewRedisStorage connects limiter storage to Redis. The server is dialed first
// because the storage constructor panics when Redis is unreachable.
func NewRedisStorage(redisURL string) (fiber.Storage, error) {
	parsed, err := url.Parse(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	host := parsed.Host
	if parsed.Port() == "" {
		host = net.JoinHostPort(parsed.Hostname(), "6379")
	}

	conn, err := net.DialTimeout("tcp", host, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("redis not reachable at %s: %w", host, err)
	}
	_ = conn.Close()

	return redis.New(redis.Config{URL: redisURL}), nil
}
