package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, h.Matches("secret123", hash))
	assert.False(t, h.Matches("secret124", hash))
	assert.False(t, h.Matches("secret123", "not-a-hash"))
}

func TestJWTSigner_RoundTrip(t *testing.T) {
	s := NewJWTSigner("test-secret", 7*24*time.Hour)
	userID := uuid.New()

	token, err := s.Sign(userID, "a@example.com", "mentor")
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "mentor", claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTSigner_Expired(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := s.Sign(uuid.New(), "a@example.com", "employee")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTSigner_WrongSecret(t *testing.T) {
	token, err := NewJWTSigner("one", time.Hour).Sign(uuid.New(), "a@example.com", "employee")
	require.NoError(t, err)

	_, err = NewJWTSigner("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTSigner_Garbage(t *testing.T) {
	_, err := NewJWTSigner("one", time.Hour).Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
