package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"photoauth/internal/oauth"
	"photoauth/pkg/logging"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Verify redeems refreshToken once and prints what the provider granted.
// It does not store the access token.
func (r *Runner) Verify(ctx context.Context, refreshToken string) error {
	p := r.params(r.cfg.RedirectURI)

	tok, err := r.client.RefreshAccessToken(ctx, p, refreshToken)
	if err != nil {
		var provErr *oauth.ProviderError
		if errors.As(err, &provErr) && provErr.ErrorCode == "invalid_grant" {
			r.println(text.FgRed.Sprint("The refresh token was rejected (invalid_grant)."))
			r.println("It may have been revoked or expired. Run the authorization flow again.")
		}
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("FIELD"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	t.AppendRow(table.Row{"token type", tok.Type()})
	t.AppendRow(table.Row{"access token", maskToken(tok.AccessToken)})
	t.AppendRow(table.Row{"expires", formatExpiry(tok.Expiry)})
	if scope, ok := tok.Extra("scope").(string); ok && scope != "" {
		t.AppendRow(table.Row{"scopes", strings.Join(strings.Fields(scope), "\n")})
	}
	if newRefresh := tok.RefreshToken; newRefresh != "" && newRefresh != refreshToken {
		t.AppendRow(table.Row{"refresh token", "rotated by the provider"})
	}
	t.Render()

	r.println(text.FgGreen.Sprint("Refresh token is valid."))
	logging.Debug("Verify", "Access token expires at %s", tok.Expiry)
	return nil
}

// Revoke invalidates refreshToken at the provider. A rejection is reported as
// a warning because Google answers 400 for tokens that are already invalid.
func (r *Runner) Revoke(ctx context.Context, refreshToken string) error {
	err := r.client.Revoke(ctx, r.cfg.RevokeURL, refreshToken)
	if err != nil {
		var provErr *oauth.ProviderError
		if !errors.As(err, &provErr) {
			return err
		}
		logging.Warn("Revoke", "Revocation was not accepted: %v", provErr)
		r.println(text.FgYellow.Sprint("WARNING: The provider did not accept the revocation."))
		r.printf("Status: %d\n", provErr.StatusCode)
		r.println("The token may already be invalid.")
	} else {
		r.println(text.FgGreen.Sprint("Refresh token revoked."))
	}

	if r.cfg.UseKeyring {
		if err := forgetKeyringToken(r.cfg); err != nil {
			logging.Warn("Keyring", "Failed to remove refresh token from keyring: %v", err)
		}
	}
	return nil
}

// maskToken keeps enough of a token to recognize it in logs.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:8] + "..."
}

func formatExpiry(expiry time.Time) string {
	if expiry.IsZero() {
		return "never"
	}
	return fmt.Sprintf("%s (in %s)", expiry.Format(time.RFC3339), time.Until(expiry).Round(time.Second))
}
