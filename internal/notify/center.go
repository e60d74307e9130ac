// Package notify delivers user-visible notifications emitted by the state
// containers, the server-side counterpart of the storefront's toast messages.
package notify

import (
	"sync"
	"time"

	"github.com/pixelpour/storefront/pkg/logger"
)

// Notification levels
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelError   = "error"
)

// Notification is a single user-visible message.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier is the interface command handlers emit notifications through.
type Notifier interface {
	Success(userID, message string)
	Info(userID, message string)
	Error(userID, message string)
}

// feedLimit bounds the per-user backlog; older entries are dropped.
const feedLimit = 50

// Center collects notifications per user and fans them out to subscribers so
// the presentation layer can re-render on state changes.
type Center struct {
	mu          sync.Mutex
	feeds       map[string][]Notification
	subscribers map[string][]chan Notification
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{
		feeds:       make(map[string][]Notification),
		subscribers: make(map[string][]chan Notification),
	}
}

// Success records a success-level notification.
func (c *Center) Success(userID, message string) {
	c.publish(userID, Notification{Level: LevelSuccess, Message: message, At: time.Now()})
}

// Info records an info-level notification.
func (c *Center) Info(userID, message string) {
	c.publish(userID, Notification{Level: LevelInfo, Message: message, At: time.Now()})
}

// Warn records a warn-level notification.
func (c *Center) Warn(userID, message string) {
	c.publish(userID, Notification{Level: LevelWarn, Message: message, At: time.Now()})
}

// Error records an error-level notification.
func (c *Center) Error(userID, message string) {
	c.publish(userID, Notification{Level: LevelError, Message: message, At: time.Now()})
}

func (c *Center) publish(userID string, n Notification) {
	logger.Logger.Info().
		Str("user_id", userID).
		Str("level", n.Level).
		Str("message", n.Message).
		Msg("Notification")

	c.mu.Lock()
	defer c.mu.Unlock()

	feed := append(c.feeds[userID], n)
	if len(feed) > feedLimit {
		feed = feed[len(feed)-feedLimit:]
	}
	c.feeds[userID] = feed

	for _, sub := range c.subscribers[userID] {
		select {
		case sub <- n:
		default:
			// Slow subscriber, drop rather than block the mutation path.
		}
	}
}

// Subscribe returns a channel receiving the user's future notifications and a
// cancel function that must be called when the subscriber goes away.
func (c *Center) Subscribe(userID string) (<-chan Notification, func()) {
	ch := make(chan Notification, 16)

	c.mu.Lock()
	c.subscribers[userID] = append(c.subscribers[userID], ch)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		subs := c.subscribers[userID]
		for i, sub := range subs {
			if sub == ch {
				c.subscribers[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}

	return ch, cancel
}

// Drain returns and clears the user's pending notifications, newest last.
func (c *Center) Drain(userID string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	feed := c.feeds[userID]
	delete(c.feeds, userID)
	return feed
}
