package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pixelpour/storefront/pkg/logger"
)

// CacheConfig controls the gateway's response cache. Only catalog reads are
// worth caching: cart, favorites and notifications are per-shopper state and
// must always hit the backend.
type CacheConfig struct {
	TTL             time.Duration
	CacheablePaths  []string // path prefixes eligible for caching
	CacheableStatus []int
}

// DefaultCacheConfig caches the public catalog surface for one minute. The
// catalog is seeded at startup and read-only, so a short TTL is purely a
// safety margin.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:             time.Minute,
		CacheablePaths:  []string{"/products", "/categories"},
		CacheableStatus: []int{fiber.StatusOK, fiber.StatusNotFound},
	}
}

// CacheMiddleware serves catalog GET responses from Redis.
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Next()
		}

		if c.Method() != fiber.MethodGet || !pathCacheable(c.Path(), config.CacheablePaths) {
			return c.Next()
		}

		cacheKey := catalogCacheKey(c)
		ctx := context.Background()

		if cached, err := redisClient.Get(ctx, cacheKey).Bytes(); err == nil && len(cached) > 0 {
			logger.Logger.Debug().
				Str("path", c.Path()).
				Msg("Gateway cache hit")

			c.Set("X-Cache", "HIT")
			c.Set("Content-Type", "application/json")
			return c.Send(cached)
		}

		err := c.Next()

		status := c.Response().StatusCode()
		if statusCacheable(status, config.CacheableStatus) {
			body := c.Response().Body()
			if setErr := redisClient.Set(ctx, cacheKey, body, config.TTL).Err(); setErr != nil {
				logger.Logger.Warn().
					Err(setErr).
					Str("path", c.Path()).
					Msg("Failed to cache catalog response")
			}
			c.Set("X-Cache", "MISS")
		}

		return err
	}
}

// catalogCacheKey hashes path + query. The cached routes are public, so the
// Authorization header deliberately stays out of the key.
func catalogCacheKey(c *fiber.Ctx) string {
	sum := sha256.Sum256([]byte(c.Path() + "?" + string(c.Request().URI().QueryString())))
	return fmt.Sprintf("gwcache:%s", hex.EncodeToString(sum[:]))
}

func pathCacheable(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func statusCacheable(status int, cacheable []int) bool {
	for _, s := range cacheable {
		if s == status {
			return true
		}
	}
	return false
}

// InvalidateCache drops cached responses matching the given Redis key
// pattern. Called when the catalog is reseeded.
func InvalidateCache(redisClient *redis.Client, pattern string) error {
	ctx := context.Background()
	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := redisClient.Del(ctx, keys...).Err(); err != nil {
		return err
	}

	logger.Logger.Info().
		Int("count", len(keys)).
		Str("pattern", pattern).
		Msg("Gateway cache invalidated")
	return nil
}
