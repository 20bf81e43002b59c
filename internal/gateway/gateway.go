// Package gateway maps one TripDocument to exactly one remote record per
// identity and keeps local state convergent with that record. Writes are
// fire-and-forget: a failed save is logged and counted but never surfaces
// to the edit path, because the in-memory document stays the source of
// truth for the session and the next edit's write re-attempts persistence.
// There is no retry loop anywhere here.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmarques/tripfolio/backend/internal/domain"
	"github.com/dmarques/tripfolio/backend/internal/identity"
	"github.com/dmarques/tripfolio/backend/internal/store"
)

// Gateway persists trip documents through a DocumentStore.
type Gateway struct {
	store store.DocumentStore
	appID string
	log   *slog.Logger

	// now is swappable for tests; production uses time.Now.
	now func() time.Time
}

// New constructs a Gateway writing records under the given application id.
func New(st store.DocumentStore, appID string, log *slog.Logger) *Gateway {
	return &Gateway{store: st, appID: appID, log: log, now: time.Now}
}

// WithClock returns a copy of the gateway using the given clock.
// Test helper; production code never calls it.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	out := *g
	out.now = now
	return &out
}

// Path returns the storage key for an identity's trip record.
func (g *Gateway) Path(id identity.Identity) string {
	return fmt.Sprintf("artifacts/%s/users/%s/itinerary_data/trip_master", g.appID, id)
}

// Save serializes the document and writes it to the identity's record.
// Failures are logged and counted, never returned: the caller's in-memory
// state remains authoritative for the session regardless of the outcome.
// An empty identity (local-only mode reached a code path it shouldn't)
// is skipped with a log line.
func (g *Gateway) Save(ctx context.Context, id identity.Identity, doc domain.TripDocument) {
	if id == "" {
		g.log.Warn("gateway: save skipped, no identity")
		return
	}

	rec, err := domain.EncodeRecord(doc, g.now())
	if err != nil {
		saveFailures.Inc()
		g.log.Error("gateway: encode document", "identity", string(id), "error", err)
		return
	}

	if err := g.store.Save(ctx, g.Path(id), rec); err != nil {
		saveFailures.Inc()
		g.log.Error("gateway: write record", "identity", string(id), "error", err)
		return
	}
	saves.Inc()
}

// Subscribe establishes a standing watch on the identity's record and
// invokes onUpdate for every change, starting with an immediate first
// delivery of the current state. A missing or corrupt record is
// initialized to the default document (saved back, then delivered) rather
// than surfacing an empty or broken state. Corrupt payloads arriving
// later are likewise replaced by the default document, never propagated
// as parse errors.
//
// Updates are delivered in the order the store committed them. The watch
// ends when ctx is canceled. Subscribe returns an error when the watch
// cannot be established or the current record cannot be read; in that
// case nothing was delivered and nothing was written.
func (g *Gateway) Subscribe(ctx context.Context, id identity.Identity, onUpdate func(domain.TripDocument)) error {
	path := g.Path(id)

	// Watch before the initial load so no committed write can fall into a
	// gap between the two. The initialization save below may therefore be
	// delivered twice (once directly, once via the watch); delivery is
	// idempotent for the subscriber, which replaces its whole document.
	wctx, cancel := context.WithCancel(ctx)
	updates, err := g.store.Watch(wctx, path)
	if err != nil {
		cancel()
		return fmt.Errorf("gateway.Gateway.Subscribe: %w", err)
	}

	doc, err := g.initialDocument(ctx, id, path)
	if err != nil {
		cancel()
		return fmt.Errorf("gateway.Gateway.Subscribe: %w", err)
	}
	onUpdate(doc)

	go func() {
		defer cancel()
		for rec := range updates {
			doc, err := rec.Document()
			if err != nil {
				corruptRecords.Inc()
				g.log.Warn("gateway: corrupt record, substituting default", "identity", string(id), "error", err)
				doc = domain.DefaultDocument(g.now())
			}
			onUpdate(doc)
		}
	}()

	return nil
}

// initialDocument loads the current record, initializing it to the
// default document when it is absent or corrupt.
func (g *Gateway) initialDocument(ctx context.Context, id identity.Identity, path string) (domain.TripDocument, error) {
	rec, err := g.store.Load(ctx, path)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		g.log.Info("gateway: no record, initializing default document", "identity", string(id))
	case err != nil:
		// A read failure that isn't "missing" leaves the remote state
		// unknown. Initializing a default here would let a later save
		// replace a record that still exists, so the subscription fails
		// instead.
		g.log.Error("gateway: load record", "identity", string(id), "error", err)
		return domain.TripDocument{}, fmt.Errorf("load record: %w", err)
	default:
		doc, derr := rec.Document()
		if derr == nil {
			return doc, nil
		}
		corruptRecords.Inc()
		g.log.Warn("gateway: corrupt record, initializing default document", "identity", string(id), "error", derr)
	}

	doc := domain.DefaultDocument(g.now())
	g.Save(ctx, id, doc)
	return doc, nil
}
