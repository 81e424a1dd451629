package flow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"photoauth/internal/oauth"
	"photoauth/pkg/logging"
)

// RunManual runs the copy-and-paste variant: print and open the consent URL,
// read one line from the operator and exchange it for tokens.
//
// An empty line aborts with ErrNoCode before any network call.
func (r *Runner) RunManual(ctx context.Context) (Outcome, error) {
	redirectURI := r.cfg.RedirectURI
	p := r.params(redirectURI)

	r.banner("Google Photos API - Refresh Token Generator")
	r.printRedirectSetup(redirectURI)
	r.presentURL(oauth.BuildAuthorizationURL(p))

	r.println()
	if isLocalhostRedirect(redirectURI) {
		r.banner(
			"Step 2: After authorization, you'll be redirected to localhost",
			"Step 3: Check the URL in your browser - it will contain 'code=' parameter",
			"Step 4: Copy everything after 'code=' (before any '&' or end of URL)",
			"        or paste the whole URL",
		)
	} else {
		r.banner(
			"Step 2: After authorization, you'll see a page with an authorization code",
			"Step 3: Copy that code and paste it below",
		)
	}

	r.printf("\nEnter the authorization code: ")
	code, err := readCode(r.in)
	if err != nil {
		return OutcomeFailed, err
	}
	if code == "" {
		r.println("Error: No authorization code provided.")
		return OutcomeFailed, ErrNoCode
	}
	logging.Debug("Manual", "Authorization code read (%d characters)", len(code))

	return r.exchangeAndReport(ctx, p, code)
}

// readCode reads a single line and returns the trimmed authorization code.
// A pasted redirect URL is accepted too; its code parameter is extracted.
func readCode(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read authorization code: %w", err)
	}
	return extractCode(strings.TrimSpace(line)), nil
}

func extractCode(input string) string {
	if !strings.Contains(input, "code=") {
		return input
	}
	if u, err := url.Parse(input); err == nil {
		if code := u.Query().Get("code"); code != "" {
			return code
		}
	}
	if q, err := url.ParseQuery(input); err == nil {
		if code := q.Get("code"); code != "" {
			return code
		}
	}
	return input
}
