package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

// MemoryStore is an in-memory DocumentStore. It backs local-only degraded
// mode (no database configured, or identity could not be established) and
// most unit tests. Watch semantics match PostgresStore: updates arrive in
// commit order and may coalesce toward the latest record under a slow
// consumer.
type MemoryStore struct {
	mu       sync.Mutex
	records  map[string]domain.Record
	watchers map[string][]chan domain.Record
}

// NewMemory constructs an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		records:  make(map[string]domain.Record),
		watchers: make(map[string][]chan domain.Record),
	}
}

// Load returns the record at path, or domain.ErrNotFound.
func (s *MemoryStore) Load(_ context.Context, path string) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[path]
	if !ok {
		return domain.Record{}, fmt.Errorf("store.MemoryStore.Load: %w", domain.ErrNotFound)
	}
	return rec, nil
}

// Save stores the record and delivers it to every watcher of path.
func (s *MemoryStore) Save(_ context.Context, path string, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[path] = rec
	for _, ch := range s.watchers[path] {
		// Buffered channels preserve order. A watcher that falls behind
		// has its oldest pending record evicted so delivery coalesces
		// toward the latest committed state instead of dropping it.
		select {
		case ch <- rec:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- rec:
			default:
			}
		}
	}
	return nil
}

// Watch registers a watcher for path. The returned channel is closed when
// ctx is canceled.
func (s *MemoryStore) Watch(ctx context.Context, path string) (<-chan domain.Record, error) {
	ch := make(chan domain.Record, 64)

	s.mu.Lock()
	s.watchers[path] = append(s.watchers[path], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		watchers := s.watchers[path]
		for i, w := range watchers {
			if w == ch {
				s.watchers[path] = append(watchers[:i], watchers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
