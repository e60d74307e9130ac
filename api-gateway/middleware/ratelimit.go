package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pixelpour/storefront/pkg/logger"
)

// RateLimiter enforces a sliding-window request limit per caller, backed by a
// Redis sorted set. Anonymous shoppers are keyed by IP, authenticated ones by
// user id so a shared NAT doesn't starve logged-in customers.
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
}

func NewRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:       redisClient,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Middleware returns the fiber handler enforcing the limit.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := "ip:" + c.IP()
		if userID := c.Locals("user_id"); userID != nil {
			caller = fmt.Sprintf("user:%v", userID)
		}

		allowed, remaining, resetAt, err := rl.take(c.UserContext(), caller)
		if err != nil {
			// Redis trouble must not take the storefront down; let the
			// request through and log it.
			logger.Logger.Error().
				Err(err).
				Str("caller", caller).
				Msg("Rate limiter unavailable")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxRequests))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))

		if !allowed {
			logger.Logger.Warn().
				Str("caller", caller).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Rate limit exceeded",
				"retry_after": time.Until(resetAt).Seconds(),
			})
		}

		return c.Next()
	}
}

// take records the request and reports whether it fits in the window.
func (rl *RateLimiter) take(ctx context.Context, caller string) (bool, int, time.Time, error) {
	key := "ratelimit:" + caller
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	remaining := rl.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return count < int64(rl.maxRequests), remaining, now.Add(rl.window), nil
}

// GlobalRateLimiter limits every caller to 100 requests per minute.
func GlobalRateLimiter(redisClient *redis.Client) fiber.Handler {
	return NewRateLimiter(redisClient, 100, time.Minute).Middleware()
}
