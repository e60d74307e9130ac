package kafka

import "time"

// CartUpdatedEvent is emitted whenever a shopper's cart changes. Downstream
// consumers use it for cross-instance cache invalidation and analytics.
type CartUpdatedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	TotalItems int       `json:"total_items"`
	TotalPrice float64   `json:"total_price"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeCartUpdated = "cart.updated"
)

// Kafka topics
const (
	TopicCartUpdated = "cart-updated"
)
