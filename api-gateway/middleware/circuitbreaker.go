package middleware

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pixelpour/storefront/pkg/logger"
)

// CircuitState is the breaker's position.
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half-open"
)

// halfOpenSuccesses is how many probe requests must succeed before the
// circuit closes again.
const halfOpenSuccesses = 3

// CircuitBreaker shields the gateway from a struggling storefront backend.
// It opens after maxFailures consecutive failures, rejects instantly while
// open, and lets probe traffic through after the cooldown.
type CircuitBreaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration

	mu              sync.RWMutex
	state           CircuitState
	failures        int
	successCount    int
	lastStateChange time.Time
}

func NewCircuitBreaker(name string, maxFailures int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		maxFailures:     maxFailures,
		cooldown:        cooldown,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Call runs fn under the breaker's protection.
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == StateOpen && time.Since(cb.lastStateChange) > cb.cooldown {
		cb.state = StateHalfOpen
		cb.successCount = 0
		logger.Logger.Info().
			Str("circuit", cb.name).
			Msg("Circuit breaker half-open, probing backend")
	}
	state := cb.state
	cb.mu.Unlock()

	if state == StateOpen {
		return fmt.Errorf("circuit breaker is open for %s", cb.name)
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
	return err
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++

	switch {
	case cb.state == StateHalfOpen:
		// A failed probe reopens immediately
		cb.state = StateOpen
		cb.lastStateChange = time.Now()
		logger.Logger.Warn().
			Str("circuit", cb.name).
			Msg("Circuit breaker reopened after failed probe")
	case cb.failures >= cb.maxFailures:
		cb.state = StateOpen
		cb.lastStateChange = time.Now()
		logger.Logger.Error().
			Str("circuit", cb.name).
			Int("failures", cb.failures).
			Msg("Circuit breaker opened")
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= halfOpenSuccesses {
			cb.state = StateClosed
			cb.failures = 0
			cb.successCount = 0
			cb.lastStateChange = time.Now()
			logger.Logger.Info().
				Str("circuit", cb.name).
				Msg("Circuit breaker closed, backend recovered")
		}
	case StateClosed:
		cb.failures = 0
	}
}

// GetState returns the breaker's current position.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// CircuitBreakerManager holds one breaker per backend. The storefront is a
// single logical service today, but health checks and future backends key by
// name.
type CircuitBreakerManager struct {
	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
}

func NewCircuitBreakerManager() *CircuitBreakerManager {
	return &CircuitBreakerManager{breakers: make(map[string]*CircuitBreaker)}
}

// GetOrCreate returns the breaker for the named backend.
func (m *CircuitBreakerManager) GetOrCreate(serviceName string) *CircuitBreaker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cb, ok := m.breakers[serviceName]; ok {
		return cb
	}

	cb := NewCircuitBreaker(serviceName, 5, 30*time.Second)
	m.breakers[serviceName] = cb
	return cb
}

// CircuitBreakerMiddleware rejects storefront traffic while the backend's
// breaker is open and counts 5xx responses as failures.
func CircuitBreakerMiddleware(manager *CircuitBreakerManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		serviceName := backendForPath(c.Path())
		if serviceName == "" {
			return c.Next()
		}

		cb := manager.GetOrCreate(serviceName)

		if cb.GetState() == StateOpen {
			logger.Logger.Warn().
				Str("service", serviceName).
				Str("path", c.Path()).
				Msg("Circuit breaker open, request blocked")

			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":       "Service temporarily unavailable",
				"retry_after": 30,
			})
		}

		var responseErr error
		err := cb.Call(func() error {
			responseErr = c.Next()
			if c.Response().StatusCode() >= 500 {
				return fmt.Errorf("backend error: %d", c.Response().StatusCode())
			}
			return nil
		})

		if err != nil && responseErr == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return responseErr
	}
}

// backendForPath maps a request path to the backend it belongs to. Everything
// the storefront serves lands on the one service.
func backendForPath(path string) string {
	prefixes := []string{
		"/auth", "/users", "/products", "/categories",
		"/cart", "/favorites", "/notifications",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return "storefront"
		}
	}
	return ""
}
