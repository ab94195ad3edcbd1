package auth

import (
	"context"
	"testing"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/auth"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testUsername   = "admin"
	testPassword   = "correct-horse-battery"
)

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(testUsername, string(hash), jwtService), jwtService
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret-pass")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret-pass")))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Username: testUsername, Password: testPassword})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Positive(t, resp.AccessTokenExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: testUsername, Password: "nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "root", Password: testPassword})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestLogin_NotConfigured(t *testing.T) {
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	require.NoError(t, err)
	svc := NewAuthService("", "", jwtService)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Username: "admin", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrAuthNotConfigured)
}

func TestRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	login, err := svc.Login(ctx, auth.LoginRequest{Username: testUsername, Password: testPassword})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_InvalidToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	assert.ErrorIs(t, svc.Logout(context.Background(), "garbage"), auth.ErrInvalidToken)
}

func TestLoginRequest_Validate(t *testing.T) {
	req := auth.LoginRequest{}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "password")
}
