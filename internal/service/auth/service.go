package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/auth"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceImpl authenticates the single configured admin account.
type AuthServiceImpl struct {
	username     string
	passwordHash string
	jwt.Service
}

func NewAuthService(username string, passwordHash string, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		username:     username,
		passwordHash: passwordHash,
		Service:      jwtService,
	}
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if a.username == "" || a.passwordHash == "" {
		return auth.TokenResponse{}, auth.ErrAuthNotConfigured
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(loginReq.Username), []byte(a.username)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(loginReq.Password)); err != nil || !usernameMatch {
		slog.Warn("Failed admin login", "username", loginReq.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var (
		tokenResponse auth.TokenResponse
		err           error
	)
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(a.username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(a.username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if a.Service.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	username, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil || username != a.username {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(username)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.Service.ParseRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}
