package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmarques/tripfolio/backend/internal/identity"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityKey contextKey = "identity"

// LocalIdentity is the single identity used when no identity manager
// could be constructed (auth failure at startup). Everything runs against
// the in-memory store in that mode, so one shared key is enough.
const LocalIdentity = identity.Identity("local")

// IdentityFromContext extracts the authenticated identity from the
// request context. ok is false when no identity middleware ran.
func IdentityFromContext(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(identityKey).(identity.Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying the identity.
// Exported for handler tests.
func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// NewIdentityHandler returns a middleware that resolves the session
// identity from the Authorization header and stores it in the request
// context. Requests without a valid Bearer token are rejected with 401;
// clients obtain a token (anonymous or otherwise) from POST /session
// first.
//
// A nil manager means identity could not be established at startup: the
// application runs local-only and every request shares LocalIdentity.
func NewIdentityHandler(m *identity.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), LocalIdentity)))
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "authorization token required")
				return
			}

			id, err := m.Verify(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"unauthenticated","message":"` + message + `"}}`))
}
