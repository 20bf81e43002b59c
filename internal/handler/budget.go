package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

// PutBudgetCurrency handles PUT /budget/currency.
func (s *Server) PutBudgetCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	var body struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	doc, err := s.trips.SetBudgetCurrency(r.Context(), id, body.Currency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PutBudgetAmount handles PUT /budget/{category}/{field}.
//
// The value is carried as a raw string; whatever the client typed goes to
// the mutation engine, which turns anything non-numeric into 0. A JSON
// number is accepted too and passed through as its literal text.
func (s *Server) PutBudgetAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	var body struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	raw := rawValueText(body.Value)
	key := domain.CategoryKey(chi.URLParam(r, "category"))
	field := chi.URLParam(r, "field")

	doc, err := s.trips.SetBudgetAmount(r.Context(), id, key, field, raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// rawValueText extracts the literal text of a JSON value: a string's
// contents, or any other value's raw token ("500", "null", ...).
func rawValueText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
