// Package kvstore provides the key-value storage backing the storefront state
// containers. Values are opaque byte payloads; each container does its own
// JSON encoding on top.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persistence contract used by the cart, favorites and review
// repositories.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
