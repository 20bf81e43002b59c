// Package identity establishes the per-user key that addresses the
// persisted trip record. A session presents either a previously issued
// token or nothing at all; in the second case a fresh anonymous identity
// is minted and handed back as a signed token so the storage key stays
// stable for the rest of the session.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

// ErrInvalidToken is returned by Verify for a malformed, forged, or
// expired token. Handlers should map this to HTTP 401.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the opaque per-user key under which the trip record is stored.
type Identity string

// Claims is the token payload: the identity plus whether it was minted
// anonymously (as opposed to pre-provisioned).
type Claims struct {
	UserID    string `json:"user_id"`
	Anonymous bool   `json:"anonymous"`
	jwt.RegisteredClaims
}

// Manager signs and verifies identity tokens with an HMAC secret.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewManager constructs a Manager. An empty secret means no identity can
// ever be established; that is domain.ErrAuthFailure, and the caller is
// expected to continue in local-only mode rather than exit.
func NewManager(secret string, tokenTTL time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("identity.NewManager: empty secret: %w", domain.ErrAuthFailure)
	}
	return &Manager{secret: []byte(secret), tokenTTL: tokenTTL}, nil
}

// Anonymous mints a fresh anonymous identity and a signed token carrying it.
func (m *Manager) Anonymous() (Identity, string, error) {
	id := Identity(uuid.NewString())
	token, err := m.sign(id, true)
	if err != nil {
		return "", "", fmt.Errorf("identity.Manager.Anonymous: %w", err)
	}
	return id, token, nil
}

// Issue signs a token for a pre-provisioned identity.
func (m *Manager) Issue(id Identity) (string, error) {
	token, err := m.sign(id, false)
	if err != nil {
		return "", fmt.Errorf("identity.Manager.Issue: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token and returns the identity it carries.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("identity.Manager.Verify: %w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", fmt.Errorf("identity.Manager.Verify: %w", ErrInvalidToken)
	}
	return Identity(claims.UserID), nil
}

func (m *Manager) sign(id Identity, anonymous bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    string(id),
		Anonymous: anonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}
