package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// counter is the subset of *redis.Client the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter is a fixed-window limiter backed by Redis INCR. The window TTL is
// set with EXPIRE NX on every hit so a key never outlives a failed EXPIRE.
type RateLimiter struct {
	Redis  counter
	Prefix string
	Limit  int // requests
	Window time.Duration
	log    *zap.SugaredLogger
}

func NewRateLimiter(r counter, prefix string, limit int, window time.Duration, log *zap.SugaredLogger) *RateLimiter {
	return &RateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window, log: log}
}

// MiddlewareByKey lets requests through when Redis itself fails.
func (r *RateLimiter) MiddlewareByKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
		defer cancel()

		redisKey := fmt.Sprintf("%s:%s", r.Prefix, keyFunc(c))
		count, err := r.Redis.Incr(ctx, redisKey).Result()
		if err != nil {
			r.log.Warnw("rate limiter unavailable", "key", redisKey, "error", err)
			return c.Next()
		}
		if err := r.Redis.ExpireNX(ctx, redisKey, r.Window).Err(); err != nil {
			r.log.Warnw("rate limiter unavailable", "key", redisKey, "error", err)
			return c.Next()
		}
		if count > int64(r.Limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"status": "error", "message": "rate limit exceeded"})
		}
		return c.Next()
	}
}

func ByIP(c *fiber.Ctx) string { return c.IP() }
