package command

import (
	"context"

	"github.com/pixelpour/storefront/kafka"
)

// Gate reports whether a shopper currently holds an authenticated session.
// Satisfied by session.Manager.
type Gate interface {
	Authenticated(userID string) bool
}

// EventPublisher publishes storefront domain events to the broker. Handlers
// tolerate a nil publisher: events are an optional side channel, never part
// of the mutation's success.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, event kafka.CartUpdatedEvent) error
}
