package flow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"photoauth/internal/oauth"
	"photoauth/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RunLocalhost runs the local-redirect variant: start the callback server,
// open the consent URL, wait for the redirect and exchange the captured code.
//
// The server is listening before the browser opens. A timeout returns
// oauth.ErrCallbackTimeout and a provider error redirect returns an
// *oauth.CallbackError; in both cases the token endpoint is never called.
func (r *Runner) RunLocalhost(ctx context.Context) (Outcome, error) {
	server := oauth.NewCallbackServer(r.cfg.CallbackPort,
		oauth.WithTimeout(r.cfg.CallbackTimeout),
		oauth.WithWaitAfterError(r.cfg.WaitAfterError),
	)

	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	redirectURI, err := server.Start(serverCtx)
	if err != nil {
		return OutcomeFailed, err
	}
	p := r.params(redirectURI)

	r.banner("Google Photos API - Refresh Token Generator (Localhost Method)")
	r.printRedirectSetup(redirectURI)
	r.printf("Local server started on %s\n", redirectURI)
	r.presentURL(oauth.BuildAuthorizationURL(p))

	r.printf("\nWaiting for authorization (up to %s)...\n", r.cfg.CallbackTimeout)
	result, err := r.waitWithSpinner(serverCtx, server)
	if err != nil {
		if errors.Is(err, oauth.ErrCallbackTimeout) {
			r.println("\nTimeout: No authorization code received.")
		}
		return OutcomeFailed, err
	}

	if cbErr := result.Err(); cbErr != nil {
		r.println()
		r.banner("ERROR: Authorization was not granted")
		r.printf("Error: %s\n", result.Error)
		if result.ErrorDescription != "" {
			r.printf("Description: %s\n", result.ErrorDescription)
		}
		return OutcomeFailed, cbErr
	}

	r.println("\nAuthorization code received! Exchanging for tokens...")
	return r.exchangeAndReport(ctx, p, result.Code)
}

func (r *Runner) waitWithSpinner(ctx context.Context, server *oauth.CallbackServer) (*oauth.CallbackResult, error) {
	if r.quiet {
		return server.WaitForCallback(ctx)
	}

	// The spinner only draws when its file is a terminal.
	writer := spinner.WithWriter(r.errOut)
	if f, ok := r.errOut.(*os.File); ok {
		writer = spinner.WithWriterFile(f)
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, writer)
	s.Suffix = " Waiting for OAuth redirect..."
	s.Start()

	result, err := server.WaitForCallback(ctx)
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint("No redirect received") + "\n"
	} else {
		s.FinalMSG = fmt.Sprintf("%s\n", text.FgGreen.Sprint("Redirect received"))
	}
	s.Stop()

	logging.Debug("Localhost", "Callback wait finished: err=%v", err)
	return result, err
}
