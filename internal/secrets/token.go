package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "gitscreen"
	TokenAccount   = "github-token"
)

// GitHubToken resolves the API token: environment variable first (CI
// friendly), OS keyring second. Empty means "run in scrape mode"; the
// caller decides, this never errors on absence.
func GitHubToken(envName string) string {
	if envName != "" {
		if tok := strings.TrimSpace(os.Getenv(envName)); tok != "" {
			return tok
		}
	}
	if tok, err := keyring.Get(KeyringService, TokenAccount); err == nil {
		return strings.TrimSpace(tok)
	}
	return ""
}

func SetGitHubToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, TokenAccount, token)
}

func DeleteGitHubToken() error {
	return keyring.Delete(KeyringService, TokenAccount)
}
