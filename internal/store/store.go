// Package store contains the document-store implementations for the
// Tripfolio backend. The gateway depends on the DocumentStore interface,
// not a concrete implementation, which allows unit tests (and local-only
// degraded mode) to run against the in-memory store while production
// runs against Postgres.
package store

import (
	"context"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

// DocumentStore persists one Record per key path and reports remote
// changes to watchers.
type DocumentStore interface {
	// Load returns the record stored at path.
	// Returns domain.ErrNotFound if no record exists there.
	Load(ctx context.Context, path string) (domain.Record, error)

	// Save writes the record at path, creating or replacing it.
	Save(ctx context.Context, path string, rec domain.Record) error

	// Watch returns a channel that receives the record at path after
	// every committed change, in commit order. Delivery may coalesce
	// under a slow consumer: intermediate records can be skipped, but
	// every delivered record is a then-current committed state and the
	// latest state is always eventually delivered. The channel is closed
	// when ctx is canceled. Watch does not deliver the current record;
	// callers load it themselves before watching.
	Watch(ctx context.Context, path string) (<-chan domain.Record, error)
}
