// Package service contains the business logic for the Tripfolio backend.
// The trip service owns each identity's document slot: edits run through
// the mutation engine, the result replaces the slot and is written
// through to the gateway, and remote updates replace the slot the same
// way. The conflict policy is document-level last-write-wins; a remote
// update arriving mid-edit overwrites unsaved local changes, with no
// field-level merge. That is an accepted limitation carried over
// deliberately; do not add merge logic here without treating it as a new
// feature.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmarques/tripfolio/backend/internal/domain"
	"github.com/dmarques/tripfolio/backend/internal/export"
	"github.com/dmarques/tripfolio/backend/internal/gateway"
	"github.com/dmarques/tripfolio/backend/internal/identity"
	"github.com/dmarques/tripfolio/backend/internal/mutate"
	"github.com/dmarques/tripfolio/backend/internal/render"
)

// ErrExportInProgress is returned when an export is requested while one
// is already running for the same identity. Handlers map this to 409.
var ErrExportInProgress = errors.New("export already in progress")

// Gateway defines the persistence operations the trip service depends on.
// Defining the interface here (in the consumer package) lets service
// tests inject a mock without a real store.
type Gateway interface {
	Save(ctx context.Context, id identity.Identity, doc domain.TripDocument)
	Subscribe(ctx context.Context, id identity.Identity, onUpdate func(domain.TripDocument)) error
}

// compile-time check: the real gateway must satisfy the interface.
var _ Gateway = (*gateway.Gateway)(nil)

// session is one identity's live editing state.
type session struct {
	mu        sync.Mutex
	doc       domain.TripDocument
	exporting bool

	// localOnly is set when the gateway subscription could not be
	// established. The remote state is unknown, so edits stay in memory
	// and are never written through: a blind save could replace a record
	// that still exists after a transient read failure.
	localOnly bool
}

// TripService implements the document operations behind the HTTP API.
type TripService struct {
	gw       Gateway
	exporter export.Exporter // nil when the export capability is absent
	log      *slog.Logger

	// ctx outlives any single request: subscriptions run for the life of
	// the service, and Close cancels them all.
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[identity.Identity]*session
}

// NewTripService constructs a TripService. Pass a nil exporter to run
// with the export capability absent (exports fail with
// domain.ErrExportUnavailable instead of being loaded lazily later).
func NewTripService(gw Gateway, exporter export.Exporter, log *slog.Logger) *TripService {
	ctx, cancel := context.WithCancel(context.Background())
	return &TripService{
		gw:       gw,
		exporter: exporter,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[identity.Identity]*session),
	}
}

// Close tears down all standing subscriptions.
func (s *TripService) Close() {
	s.cancel()
}

// Document returns the identity's current document, establishing the
// session (and its remote subscription) on first access.
func (s *TripService) Document(ctx context.Context, id identity.Identity) (domain.TripDocument, error) {
	sess, err := s.session(id)
	if err != nil {
		return domain.TripDocument{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc, nil
}

// Preview returns the formatted read-only preview of the current document.
func (s *TripService) Preview(ctx context.Context, id identity.Identity) (string, error) {
	doc, err := s.Document(ctx, id)
	if err != nil {
		return "", err
	}
	return render.Preview(doc), nil
}

// SetField replaces a scalar document field. Unknown field names and
// unparsable dates are validation errors at this boundary (the engine
// itself treats them as no-ops and stays total).
func (s *TripService) SetField(ctx context.Context, id identity.Identity, field, value string) (domain.TripDocument, error) {
	switch field {
	case mutate.FieldTitle, mutate.FieldDestination, mutate.FieldNotes:
	case mutate.FieldStartDate, mutate.FieldEndDate:
		if _, err := domain.ParseDate(value); err != nil {
			return domain.TripDocument{}, fmt.Errorf("service.TripService.SetField: %w: %q is not a date", domain.ErrValidation, value)
		}
	default:
		return domain.TripDocument{}, fmt.Errorf("service.TripService.SetField: %w: unknown field %q", domain.ErrValidation, field)
	}

	return s.apply(ctx, id, func(doc domain.TripDocument) domain.TripDocument {
		return mutate.SetField(doc, field, value)
	})
}

// SetActivityField replaces the time or description of one activity.
// Unknown day or activity IDs are a silent no-op, per the edit contract.
func (s *TripService) SetActivityField(ctx context.Context, id identity.Identity, dayID, activityID uuid.UUID, field, value string) (domain.TripDocument, error) {
	if field != mutate.ActivityFieldTime && field != mutate.ActivityFieldDescription {
		return domain.TripDocument{}, fmt.Errorf("service.TripService.SetActivityField: %w: unknown field %q", domain.ErrValidation, field)
	}
	return s.apply(ctx, id, func(doc domain.TripDocument) domain.TripDocument {
		return mutate.SetActivityField(doc, dayID, activityID, field, value)
	})
}

// AddActivity appends a blank activity to the named day.
func (s *TripService) AddActivity(ctx context.Context, id identity.Identity, dayID uuid.UUID) (domain.TripDocument, error) {
	return s.apply(ctx, id, func(doc domain.TripDocument) domain.TripDocument {
		return mutate.AddActivity(doc, dayID)
	})
}

// RemoveActivity removes one activity from a day.
func (s *TripService) RemoveActivity(ctx context.Context, id identity.Identity, dayID, activityID uuid.UUID) (domain.TripDocument, error) {
	return s.apply(ctx, id, func(doc domain.TripDocument) domain.TripDocument {
		return mutate.RemoveActivity(doc, dayID, activityID)
	})
}

// AddDay appends a new seeded day at the end of the itinerary.
func (s *TripService) AddDay(ctx context.Context, id identity.Identity) (domain.TripDocument, error) {
	return s.apply(ctx, id, mutate.AddDay)
}

// RemoveDay removes the named day and renumbers the rest.
func (s *TripService) RemoveDay(ctx context.Context, id identity.Identity, dayID uuid.UUID) (domain.TripDocument, error) {
	return s.apply(ctx, id, func(doc domain.TripDocument) domain.TripDocument {
		return mutate.RemoveDay(doc, dayID)
	})
}

// SetBudgetCurrency replaces the budget currency; codes outside the
// supported set are a validation error.
func (s *TripService) SetBudgetCurrency(ctx context.Context, id identity.Identity, currency string) (domain.TripDocument, error) {
	if !domain.ValidCurrency(currency) {
		return domain.TripDocument{}, fmt.Errorf("service.TripService.SetBudgetCurrency: %w: unsupported currency %q", domain.ErrValidation, currency)
	}
	return s.apply(ctx, id, func(doc domain.TripDocument) domain.TripDocument {
		return mutate.SetBudgetCurrency(doc, currency)
	})
}

// SetBudgetAmount writes a raw amount string into one category field.
// Non-numeric values become 0 (that is the engine's contract, not an
// error); an unknown category or field name is a validation error here
// at the edit surface.
func (s *TripService) SetBudgetAmount(ctx context.Context, id identity.Identity, key domain.CategoryKey, field, raw string) (domain.TripDocument, error) {
	if !domain.ValidCategory(key) {
		return domain.TripDocument{}, fmt.Errorf("service.TripService.SetBudgetAmount: %w: unknown category %q", domain.ErrValidation, key)
	}
	if field != mutate.BudgetFieldEstimated && field != mutate.BudgetFieldActual {
		return domain.TripDocument{}, fmt.Errorf("service.TripService.SetBudgetAmount: %w: unknown field %q", domain.ErrValidation, field)
	}
	return s.apply(ctx, id, func(doc domain.TripDocument) domain.TripDocument {
		return mutate.SetBudgetAmount(doc, key, field, raw)
	})
}

// Export saves the current document (so the exported artifact matches the
// persisted preview; local-only sessions skip the save) and renders it to
// a PDF. Only one export may run per
// identity at a time; a second request while one is in flight gets
// ErrExportInProgress. With no exporter configured the capability is
// absent and the call fails with domain.ErrExportUnavailable. No partial
// file is produced in any failure case.
func (s *TripService) Export(ctx context.Context, id identity.Identity) ([]byte, string, error) {
	if s.exporter == nil {
		return nil, "", fmt.Errorf("service.TripService.Export: %w", domain.ErrExportUnavailable)
	}

	sess, err := s.session(id)
	if err != nil {
		return nil, "", err
	}

	sess.mu.Lock()
	if sess.exporting {
		sess.mu.Unlock()
		return nil, "", fmt.Errorf("service.TripService.Export: %w", ErrExportInProgress)
	}
	sess.exporting = true
	doc := sess.doc
	localOnly := sess.localOnly
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.exporting = false
		sess.mu.Unlock()
	}()

	if !localOnly {
		s.gw.Save(ctx, id, doc)
	}

	pdf, name, err := s.exporter.Export(doc)
	if err != nil {
		return nil, "", fmt.Errorf("service.TripService.Export: %w", err)
	}
	return pdf, name, nil
}

// apply runs one mutation against the freshest known document, replaces
// the slot with the result, and writes it through. The returned document
// is the post-mutation state.
func (s *TripService) apply(ctx context.Context, id identity.Identity, fn func(domain.TripDocument) domain.TripDocument) (domain.TripDocument, error) {
	sess, err := s.session(id)
	if err != nil {
		return domain.TripDocument{}, err
	}

	sess.mu.Lock()
	next := fn(sess.doc)
	sess.doc = next
	localOnly := sess.localOnly
	sess.mu.Unlock()

	if !localOnly {
		s.gw.Save(ctx, id, next)
	}
	return next, nil
}

// session returns the identity's session, creating it (and subscribing
// to remote updates) on first access.
func (s *TripService) session(id identity.Identity) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}

	sess := &session{}

	// The subscription's first delivery is synchronous, so the slot is
	// populated (from the remote record, or the initialized default)
	// before the session is handed out.
	err := s.gw.Subscribe(s.ctx, id, func(doc domain.TripDocument) {
		sess.mu.Lock()
		sess.doc = doc
		sess.mu.Unlock()
	})
	if err != nil {
		// Degraded: the watch could not be established. The session still
		// works from memory with a default document, but nothing is
		// written through; the remote record, if one exists, is left
		// untouched.
		s.log.Error("service: subscribe failed, session is local-only", "identity", string(id), "error", err)
		sess.doc = domain.DefaultDocument(time.Now())
		sess.localOnly = true
	}

	s.sessions[id] = sess
	return sess, nil
}
