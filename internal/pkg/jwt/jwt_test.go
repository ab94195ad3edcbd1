package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret-key-for-jwt", "15m", "24h")
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "soon", "24h")
	assert.Error(t, err)
}

func TestAccessToken(t *testing.T) {
	svc := newService(t)

	token, expiresAt, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", parsed.Subject())
	tokenType, _ := parsed.Get("type")
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestParseRefreshToken(t *testing.T) {
	svc := newService(t)

	refresh, _, err := svc.GenerateRefreshToken("admin")
	require.NoError(t, err)
	username, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	access, _, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ParseRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newService(t)

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}

func TestPruneRevoked(t *testing.T) {
	svc := newService(t).(*JWTService)
	start := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	svc.RevokeToken("old")
	svc.now = func() time.Time { return start.Add(20 * time.Hour) }
	svc.RevokeToken("recent")

	svc.now = func() time.Time { return start.Add(25 * time.Hour) }
	assert.Equal(t, 1, svc.PruneRevoked())
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("recent"))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newService(t)

	cookie := svc.RefreshTokenCookie("abc", 1700000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)

	cleared := svc.ClearRefreshTokenCookie()
	assert.Empty(t, cleared.Value)
}
