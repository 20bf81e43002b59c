package identity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarques/tripfolio/backend/internal/domain"
	"github.com/dmarques/tripfolio/backend/internal/identity"
)

func newManager(t *testing.T) *identity.Manager {
	t.Helper()
	m, err := identity.NewManager("test-secret-32-bytes-long-enough", time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewManager_EmptySecretIsAuthFailure(t *testing.T) {
	_, err := identity.NewManager("", time.Hour)
	assert.ErrorIs(t, err, domain.ErrAuthFailure)
}

func TestAnonymous_RoundTrip(t *testing.T) {
	m := newManager(t)

	id, token, err := m.Anonymous()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, token)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestAnonymous_IdentitiesAreDistinct(t *testing.T) {
	m := newManager(t)

	a, _, err := m.Anonymous()
	require.NoError(t, err)
	b, _, err := m.Anonymous()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestIssue_RoundTrip(t *testing.T) {
	m := newManager(t)

	token, err := m.Issue(identity.Identity("user-42"))
	require.NoError(t, err)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity.Identity("user-42"), got)
}

func TestVerify_Garbage(t *testing.T) {
	m := newManager(t)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newManager(t)
	other, err := identity.NewManager("a-completely-different-secret-key", time.Hour)
	require.NoError(t, err)

	_, token, err := m.Anonymous()
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	m, err := identity.NewManager("test-secret-32-bytes-long-enough", -time.Minute)
	require.NoError(t, err)

	_, token, err := m.Anonymous()
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}
