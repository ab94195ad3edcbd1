package oauth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const DriveScope = "https://www.googleapis.com/auth/drive"

var ErrNoServiceAccount = errors.New("no service account configured")

// ServiceAccount is the Drive service account, either inline or from a JSON key file.
// Inline values win over the key file.
type ServiceAccount struct {
	Email       string
	PrivateKey  string
	KeyFilePath string
}

type DriveCredentials interface {
	// TokenSource returns a source for the caller's access token when one is given,
	// otherwise for the service account. serviceAccount reports which one was used.
	TokenSource(ctx context.Context, accessToken string) (ts oauth2.TokenSource, serviceAccount bool, err error)
}

type DriveCredentialsImpl struct {
	config *jwt.Config
}

// NewDriveCredentials resolves the service account once. With no account configured
// only per-request access tokens are accepted.
func NewDriveCredentials(account ServiceAccount) (DriveCredentials, error) {
	config, err := jwtConfig(account)
	if err != nil {
		return nil, err
	}
	return &DriveCredentialsImpl{config: config}, nil
}

func jwtConfig(account ServiceAccount) (*jwt.Config, error) {
	email := strings.TrimSpace(account.Email)
	key := normalizePrivateKey(account.PrivateKey)

	if email != "" && key != "" {
		return &jwt.Config{
			Email:      email,
			PrivateKey: []byte(key),
			Scopes:     []string{DriveScope},
			TokenURL:   google.JWTTokenURL,
		}, nil
	}

	if account.KeyFilePath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(account.KeyFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyfile: %w", err)
	}
	config, err := google.JWTConfigFromJSON(data, DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keyfile: %w", err)
	}
	if email != "" {
		config.Email = email
	}
	return config, nil
}

// normalizePrivateKey restores newlines escaped as "\n" in environment variables.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), `\n`, "\n")
}

func (c *DriveCredentialsImpl) TokenSource(ctx context.Context, accessToken string) (oauth2.TokenSource, bool, error) {
	if token := BearerToken(accessToken); token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), false, nil
	}
	if c.config == nil {
		return nil, false, ErrNoServiceAccount
	}
	return c.config.TokenSource(ctx), true, nil
}

// BearerToken strips an optional "Bearer " prefix from an Authorization value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
