package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// credentialsFile is the name of the token file inside ConfigDir.
// The token is the bearer token returned by the board API's login endpoint;
// session issuance and expiry are entirely server-side.
const credentialsFile = "credentials"

// CredentialsPath returns the path to the stored token file.
func CredentialsPath() string {
	return filepath.Join(ConfigDir(), credentialsFile)
}

// SaveToken writes the bearer token to the credentials file, creating the
// config directory if needed. The file is user-readable only.
func SaveToken(token string) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}

	if err := os.MkdirAll(ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(CredentialsPath(), []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// LoadToken reads the stored bearer token. It returns an empty string (and
// no error) when no credentials file exists; callers decide whether an
// anonymous client is acceptable.
func LoadToken() (string, error) {
	data, err := os.ReadFile(CredentialsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearToken removes the stored credentials. Missing credentials are not an
// error.
func ClearToken() error {
	if err := os.Remove(CredentialsPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}
