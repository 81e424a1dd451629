package flow

import (
	"context"
	"errors"
	"fmt"
	"os"

	"photoauth/internal/oauth"
	"photoauth/pkg/logging"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/zalando/go-keyring"
)

// KeyringService is the service name refresh tokens are stored under when
// the keyring sink is enabled. The OAuth client ID is used as the user.
const KeyringService = "photoauth"

// Outcome describes how a flow ended.
type Outcome int

const (
	// OutcomeFailed means no token was obtained.
	OutcomeFailed Outcome = iota
	// OutcomeSaved means a refresh token was printed and persisted.
	OutcomeSaved
	// OutcomeNoRefreshToken means the exchange succeeded but the provider
	// returned no refresh token. This is a warning, not an error.
	OutcomeNoRefreshToken
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeNoRefreshToken:
		return "no-refresh-token"
	default:
		return "failed"
	}
}

// exchangeAndReport trades code for tokens and reports the result to the
// operator. The token file is only written when a refresh token is present.
func (r *Runner) exchangeAndReport(ctx context.Context, p oauth.Params, code string) (Outcome, error) {
	r.println("\nExchanging authorization code for tokens...")

	resp, err := r.client.ExchangeCode(ctx, p, code)
	if err != nil {
		var provErr *oauth.ProviderError
		if errors.As(err, &provErr) {
			r.println()
			r.banner(text.FgRed.Sprint("ERROR: Failed to exchange authorization code"))
			r.printf("Status: %d\n", provErr.StatusCode)
			r.printf("Response: %s\n", provErr.Body)
			if provErr.Description != "" {
				r.printf("\nError: %s\n", provErr.Description)
			}
			return OutcomeFailed, err
		}

		r.println()
		r.banner(text.FgRed.Sprint("ERROR: An unexpected error occurred"))
		r.println(err.Error())
		return OutcomeFailed, err
	}

	if !resp.HasRefreshToken() {
		logging.Warn("Exchange", "Token response did not contain a refresh token")
		r.println()
		r.banner(text.FgYellow.Sprint("WARNING: No refresh token in response!"))
		r.println("This can happen if you've already authorized this app before.")
		r.println("Revoke access at https://myaccount.google.com/permissions and try again.")
		r.println()
		r.println("Full response:")
		r.println(resp.Pretty())
		return OutcomeNoRefreshToken, nil
	}

	token := resp.RefreshToken()

	r.println()
	r.banner(text.FgGreen.Sprint("SUCCESS! Your refresh token:"))
	r.println()
	r.println(token)
	r.println()
	r.println(rule)
	r.println()
	r.println("Save this as your GOOGLE_PHOTOS_REFRESH_TOKEN environment variable")
	r.println()

	if err := r.persist(token); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeSaved, nil
}

// persist writes the refresh token to the configured file, and to the OS
// keyring when enabled.
func (r *Runner) persist(token string) error {
	path := r.cfg.TokenFile
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write refresh token to %s: %w", path, err)
	}
	logging.Debug("Exchange", "Refresh token written to %s", path)
	r.printf("Refresh token also saved to: %s\n", path)

	if !r.cfg.UseKeyring {
		return nil
	}
	if err := keyring.Set(KeyringService, r.cfg.ClientID, token); err != nil {
		// The file copy already succeeded.
		logging.Warn("Keyring", "Failed to store refresh token in keyring: %v", err)
		r.println("Could not store the refresh token in the system keyring.")
		return nil
	}
	r.printf("Refresh token stored in the system keyring (service %q).\n", KeyringService)
	return nil
}
