package flow

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"photoauth/internal/config"
	"photoauth/internal/oauth"
	"photoauth/pkg/logging"
)

// ErrNoCode is returned when the operator submits an empty authorization code.
var ErrNoCode = errors.New("no authorization code provided")

const rule = "======================================================================"

// Runner executes one authorization flow for a fixed configuration.
type Runner struct {
	cfg     config.Config
	client  *oauth.Client
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	openURL func(string) error
	quiet   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithClient sets the OAuth client used for the token exchange.
func WithClient(c *oauth.Client) Option {
	return func(r *Runner) {
		r.client = c
	}
}

// WithIO sets the operator's input, output and progress streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *Runner) {
		r.in = in
		r.out = out
		r.errOut = errOut
	}
}

// WithURLOpener replaces the browser launcher.
func WithURLOpener(open func(string) error) Option {
	return func(r *Runner) {
		r.openURL = open
	}
}

// WithQuiet suppresses the waiting spinner.
func WithQuiet(quiet bool) Option {
	return func(r *Runner) {
		r.quiet = quiet
	}
}

// New creates a Runner for cfg. The configuration is expected to be
// validated already.
func New(cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		client:  oauth.NewClient(),
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		openURL: oauth.OpenBrowser,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// params builds the OAuth request parameters for redirectURI.
func (r *Runner) params(redirectURI string) oauth.Params {
	return oauth.Params{
		ClientID:     r.cfg.ClientID,
		ClientSecret: r.cfg.ClientSecret,
		RedirectURI:  redirectURI,
		Scopes:       r.cfg.Scopes,
		AuthURL:      r.cfg.AuthURL,
		TokenURL:     r.cfg.TokenURL,
	}
}

func (r *Runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) println(a ...interface{}) {
	fmt.Fprintln(r.out, a...)
}

func (r *Runner) banner(lines ...string) {
	r.println(rule)
	for _, l := range lines {
		r.println(l)
	}
	r.println(rule)
}

// printRedirectSetup explains how to register the redirect URI.
func (r *Runner) printRedirectSetup(redirectURI string) {
	r.println()
	r.println("IMPORTANT: Make sure your OAuth client in Google Cloud Console")
	r.println("has this redirect URI configured:")
	r.printf("  %s\n", redirectURI)
	r.println()
	r.println("If you get an 'invalid_request' or 'redirect_uri_mismatch' error:")
	r.println("1. Go to Google Cloud Console > APIs & Services > Credentials")
	r.println("2. Click on your OAuth 2.0 Client ID")
	r.println("3. Under 'Authorized redirect URIs', click 'ADD URI'")
	r.printf("4. Add: %s\n", redirectURI)
	r.println("5. Click 'SAVE' and try again")
	r.println()
	r.println(rule)
}

// presentURL prints the authorization URL and tries to open it. A browser
// that fails to open is not fatal; the operator can copy the URL.
func (r *Runner) presentURL(authURL string) {
	r.println()
	r.println("Step 1: Opening authorization URL in your browser...")
	r.println("If the browser doesn't open automatically, copy this URL:")
	r.println()
	r.println(authURL)
	r.println()

	if err := r.openURL(authURL); err != nil {
		logging.Warn("Browser", "Could not open browser automatically: %v", err)
		r.println("Could not open browser automatically. Please copy the URL above.")
		return
	}
	r.println("Browser opened! Please authorize the application.")
}

func isLocalhostRedirect(redirectURI string) bool {
	return strings.HasPrefix(redirectURI, "http://localhost") || strings.HasPrefix(redirectURI, "http://127.0.0.1")
}
