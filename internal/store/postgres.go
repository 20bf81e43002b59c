package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

// notifyChannel is the Postgres NOTIFY channel raised by the
// trip_documents trigger (see migrations). The payload is the record path.
const notifyChannel = "trip_documents"

// PostgresStore is the Postgres implementation of DocumentStore.
// Change notification rides on LISTEN/NOTIFY: a trigger on the
// trip_documents table emits the record's path on every insert or update,
// and each Watch holds a dedicated connection listening for it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgresStore backed by the provided pool.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load retrieves the record stored at path.
func (s *PostgresStore) Load(ctx context.Context, path string) (domain.Record, error) {
	const q = `
		SELECT itinerary_data, last_updated
		FROM trip_documents
		WHERE path = @path`

	var rec domain.Record
	err := s.pool.QueryRow(ctx, q, pgx.NamedArgs{"path": path}).
		Scan(&rec.ItineraryData, &rec.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, fmt.Errorf("store.PostgresStore.Load: %w", domain.ErrNotFound)
		}
		return domain.Record{}, fmt.Errorf("store.PostgresStore.Load: %w", err)
	}
	return rec, nil
}

// Save upserts the record at path. The table trigger fires the change
// notification as part of the same transaction, so watchers observe
// writes in commit order.
func (s *PostgresStore) Save(ctx context.Context, path string, rec domain.Record) error {
	const q = `
		INSERT INTO trip_documents (path, itinerary_data, last_updated)
		VALUES (@path, @itinerary_data, @last_updated)
		ON CONFLICT (path) DO UPDATE
		SET itinerary_data = EXCLUDED.itinerary_data,
		    last_updated   = EXCLUDED.last_updated`

	args := pgx.NamedArgs{
		"path":           path,
		"itinerary_data": rec.ItineraryData,
		"last_updated":   rec.LastUpdated,
	}

	if _, err := s.pool.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("store.PostgresStore.Save: %w", err)
	}
	return nil
}

// Watch acquires a dedicated connection, LISTENs on the notify channel,
// and reloads the record whenever a notification for path arrives.
// Reload-on-notify means rapid consecutive writes may coalesce into one
// delivery of the latest state, which still satisfies in-order delivery.
func (s *PostgresStore) Watch(ctx context.Context, path string) (<-chan domain.Record, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.PostgresStore.Watch: acquire: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("store.PostgresStore.Watch: listen: %w", err)
	}

	ch := make(chan domain.Record, 16)
	go func() {
		defer close(ch)
		defer conn.Release()

		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				// ctx canceled or connection lost; either way the watch is over.
				return
			}
			if n.Payload != path {
				continue
			}

			rec, err := s.Load(ctx, path)
			if err != nil {
				continue
			}
			select {
			case ch <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
