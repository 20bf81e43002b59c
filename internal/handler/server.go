// Package handler implements the HTTP handlers for the Tripfolio API.
// All handlers are methods on Server. Methods are split into files by
// surface (document.go, budget.go, export.go, session.go) but all share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarques/tripfolio/backend/internal/domain"
	"github.com/dmarques/tripfolio/backend/internal/identity"
)

// TripServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the gateway or a store.
type TripServicer interface {
	Document(ctx context.Context, id identity.Identity) (domain.TripDocument, error)
	Preview(ctx context.Context, id identity.Identity) (string, error)
	SetField(ctx context.Context, id identity.Identity, field, value string) (domain.TripDocument, error)
	SetActivityField(ctx context.Context, id identity.Identity, dayID, activityID uuid.UUID, field, value string) (domain.TripDocument, error)
	AddActivity(ctx context.Context, id identity.Identity, dayID uuid.UUID) (domain.TripDocument, error)
	RemoveActivity(ctx context.Context, id identity.Identity, dayID, activityID uuid.UUID) (domain.TripDocument, error)
	AddDay(ctx context.Context, id identity.Identity) (domain.TripDocument, error)
	RemoveDay(ctx context.Context, id identity.Identity, dayID uuid.UUID) (domain.TripDocument, error)
	SetBudgetCurrency(ctx context.Context, id identity.Identity, currency string) (domain.TripDocument, error)
	SetBudgetAmount(ctx context.Context, id identity.Identity, key domain.CategoryKey, field, raw string) (domain.TripDocument, error)
	Export(ctx context.Context, id identity.Identity) ([]byte, string, error)
}

// Server implements all API endpoints.
type Server struct {
	trips TripServicer
	ids   *identity.Manager // nil in local-only degraded mode
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, ids *identity.Manager) *Server {
	return &Server{trips: trips, ids: ids}
}

// Router builds the chi router for the API. The identity middleware is
// injected so tests can substitute a stub; every route except /healthz
// and /session runs behind it.
func (s *Server) Router(identityMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Post("/session", s.CreateSession)

	r.Group(func(r chi.Router) {
		r.Use(identityMW)

		r.Get("/document", s.GetDocument)
		r.Put("/document/fields", s.PutDocumentField)

		r.Post("/days", s.PostDay)
		r.Delete("/days/{dayID}", s.DeleteDay)
		r.Post("/days/{dayID}/activities", s.PostActivity)
		r.Put("/days/{dayID}/activities/{activityID}", s.PutActivityField)
		r.Delete("/days/{dayID}/activities/{activityID}", s.DeleteActivity)

		r.Put("/budget/currency", s.PutBudgetCurrency)
		r.Put("/budget/{category}/{field}", s.PutBudgetAmount)

		r.Get("/preview", s.GetPreview)
		r.Get("/export", s.GetExport)
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
