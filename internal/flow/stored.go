package flow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"photoauth/internal/config"
	"photoauth/pkg/logging"

	"github.com/zalando/go-keyring"
)

// LoadRefreshToken finds a previously issued refresh token. The explicit
// value wins, then GOOGLE_PHOTOS_REFRESH_TOKEN, then the keyring (when
// enabled) and finally the token file. It also reports where the token came
// from.
func LoadRefreshToken(cfg config.Config, explicit string) (string, string, error) {
	if token := strings.TrimSpace(explicit); token != "" {
		return token, "--token flag", nil
	}
	if cfg.RefreshToken != "" {
		return cfg.RefreshToken, config.EnvRefreshToken, nil
	}

	if cfg.UseKeyring {
		token, err := keyring.Get(KeyringService, cfg.ClientID)
		switch {
		case err == nil && token != "":
			return token, "system keyring", nil
		case err != nil && !errors.Is(err, keyring.ErrNotFound):
			logging.Warn("Keyring", "Failed to read refresh token from keyring: %v", err)
		}
	}

	data, err := os.ReadFile(cfg.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", &config.ConfigurationError{
				Field:   "token",
				Message: "no refresh token found",
				Suggestions: []string{
					fmt.Sprintf("Run 'photoauth localhost' or 'photoauth manual' to create %s", cfg.TokenFile),
					fmt.Sprintf("Or set %s, or pass --token", config.EnvRefreshToken),
				},
			}
		}
		return "", "", fmt.Errorf("failed to read refresh token from %s: %w", cfg.TokenFile, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", "", &config.ConfigurationError{
			Field:   "token",
			Message: fmt.Sprintf("%s is empty", cfg.TokenFile),
		}
	}
	return token, cfg.TokenFile, nil
}

// forgetKeyringToken removes the stored keyring entry, if any.
func forgetKeyringToken(cfg config.Config) error {
	err := keyring.Delete(KeyringService, cfg.ClientID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
