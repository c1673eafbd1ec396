// Package store provides the persistent key-value port the engine reads and
// writes its state through. Values are JSON-serialized blobs; the store is the
// single source of truth and every in-memory copy above it is a cache.
package store

import "context"

// Keys for the three persisted namespaces. No schema versioning.
const (
	KeyUserStats      = "user-stats"
	KeyUserTasks      = "user-tasks"
	KeyLastActiveDate = "last-active-date"
)

// Store is the persistence port. Get unmarshals the stored JSON value into
// dest and reports whether the key was present; Set marshals and writes.
// Failures are wrapped so they match models.ErrStoreUnavailable.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}
