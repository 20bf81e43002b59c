package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarques/tripfolio/backend/internal/identity"
	"github.com/dmarques/tripfolio/backend/internal/middleware"
)

// requestIdentity pulls the identity placed in context by the identity
// middleware. A missing identity means the route was wired without the
// middleware, which is a programming error surfaced as 500.
func requestIdentity(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "no identity in request context"},
		})
		return "", false
	}
	return id, true
}

// pathUUID parses a UUID URL parameter, rejecting the request on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, name+" is not a valid id")
		return uuid.Nil, false
	}
	return id, true
}

// fieldValueBody is the request body shared by the field-edit endpoints.
type fieldValueBody struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// GetDocument handles GET /document.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	doc, err := s.trips.Document(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PutDocumentField handles PUT /document/fields.
func (s *Server) PutDocumentField(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	var body fieldValueBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	doc, err := s.trips.SetField(r.Context(), id, body.Field, body.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PostDay handles POST /days.
func (s *Server) PostDay(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	doc, err := s.trips.AddDay(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDay handles DELETE /days/{dayID}.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	doc, err := s.trips.RemoveDay(r.Context(), id, dayID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PostActivity handles POST /days/{dayID}/activities.
func (s *Server) PostActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	doc, err := s.trips.AddActivity(r.Context(), id, dayID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PutActivityField handles PUT /days/{dayID}/activities/{activityID}.
func (s *Server) PutActivityField(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	var body fieldValueBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	doc, err := s.trips.SetActivityField(r.Context(), id, dayID, activityID, body.Field, body.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteActivity handles DELETE /days/{dayID}/activities/{activityID}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	doc, err := s.trips.RemoveActivity(r.Context(), id, dayID, activityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
