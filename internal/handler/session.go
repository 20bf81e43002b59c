package handler

import (
	"net/http"
	"strings"

	"github.com/dmarques/tripfolio/backend/internal/middleware"
)

// sessionResponse is the body of POST /session.
type sessionResponse struct {
	Identity  string `json:"identity"`
	Token     string `json:"token,omitempty"`
	LocalOnly bool   `json:"localOnly,omitempty"`
}

// CreateSession handles POST /session. A client presenting a valid token
// keeps its identity (the same token is simply confirmed); anyone else
// gets a freshly minted anonymous identity. In local-only degraded mode
// there is no token at all; the response says so and every request runs
// as the shared local identity.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	if s.ids == nil {
		writeJSON(w, http.StatusOK, sessionResponse{
			Identity:  string(middleware.LocalIdentity),
			LocalOnly: true,
		})
		return
	}

	// A pre-provisioned or previously issued token wins over minting a
	// new anonymous identity, so reloads keep the same storage key.
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if id, err := s.ids.Verify(parts[1]); err == nil {
				writeJSON(w, http.StatusOK, sessionResponse{
					Identity: string(id),
					Token:    parts[1],
				})
				return
			}
		}
	}

	id, token, err := s.ids.Anonymous()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Identity: string(id), Token: token})
}
