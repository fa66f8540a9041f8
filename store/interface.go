package store

import (
	"context"
	"errors"
)

// Fixed keys under which each collection is stored as one JSON array.
const (
	KeyMenu    = "api-menu"
	KeyCart    = "cart"
	KeyOrders  = "orders"
	KeyReviews = "reviews"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("key not found")

// UpdateFunc receives the current value (nil when the key is absent) and
// returns the value to store. Returning nil removes the key.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is a key-value blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error

	// Update runs a read-modify-write on one key. Concurrent updates of the
	// same key are serialised.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	Close() error
}
