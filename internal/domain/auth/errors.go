package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid username or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrAuthNotConfigured          = errors.New("admin login is not configured")
)
