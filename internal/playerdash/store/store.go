package store

import (
	"context"
	"errors"

	"github.com/pixelforge/playerdash/internal/playerdash/domain"
)

var ErrNotFound = errors.New("store: not found")

// Users is the user repository capability. Concrete drivers (jsonfile,
// sqlite, memory) implement this; services depend only on the interface so
// tests can substitute the in-memory driver.
type Users interface {
	// LoadAll reads the entire durable store, in registration order.
	// A missing store yields an empty slice, not an error. An unreadable or
	// corrupt store is logged by the driver and also yields an empty slice:
	// the store deliberately fails open to "no users registered yet".
	LoadAll(ctx context.Context) ([]domain.User, error)

	// SaveAll overwrites the entire durable store with records. I/O failures
	// are returned so callers can report that persistence did not happen.
	SaveAll(ctx context.Context, records []domain.User) error

	// FindByUsername returns the record with an exact (case-sensitive)
	// username match, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (domain.User, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
