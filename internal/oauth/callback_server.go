package oauth

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"photoauth/pkg/logging"

	"github.com/Masterminds/sprig/v3"
)

// DefaultCallbackPort is the default port for the local OAuth callback server.
// It must match a redirect URI registered for the OAuth client.
const DefaultCallbackPort = 8080

// CallbackTimeout is how long to wait for the OAuth callback.
const CallbackTimeout = 300 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

var callbackTemplates = template.Must(
	template.New("callback").Funcs(sprig.HtmlFuncMap()).ParseFS(templateFS, "templates/*.html"),
)

// CallbackResult represents the result of an OAuth callback.
type CallbackResult struct {
	// Code is the authorization code from the OAuth provider.
	Code string

	// Error is the error code if the authorization failed.
	Error string

	// ErrorDescription is a human-readable error description.
	ErrorDescription string
}

// IsError returns true if the callback result represents an error.
func (r *CallbackResult) IsError() bool {
	return r.Error != ""
}

// Err converts an error result into a *CallbackError, or returns nil.
func (r *CallbackResult) Err() error {
	if !r.IsError() {
		return nil
	}
	return &CallbackError{Code: r.Error, Description: r.ErrorDescription}
}

// CallbackServer is a temporary local HTTP server for receiving the OAuth
// redirect. It starts, waits for a single callback, then shuts down.
//
// The first request carrying a code (or, unless WithWaitAfterError is set,
// an error) completes the server: its result is delivered exactly once and
// the listener is closed. Requests with neither parameter, such as favicon
// probes, get a waiting page and change nothing.
type CallbackServer struct {
	port           int
	timeout        time.Duration
	waitAfterError bool

	server   *http.Server
	listener net.Listener
	deadline time.Time

	resultCh  chan *CallbackResult
	errorCh   chan error
	completed atomic.Bool
	claimOnce sync.Once
	stopOnce  sync.Once

	redirectURI string
}

// CallbackOption configures a CallbackServer.
type CallbackOption func(*CallbackServer)

// WithTimeout overrides CallbackTimeout.
func WithTimeout(d time.Duration) CallbackOption {
	return func(s *CallbackServer) {
		s.timeout = d
	}
}

// WithWaitAfterError keeps the server listening after an error redirect, so a
// later successful redirect can still complete the run. Without it an error
// redirect ends the wait immediately.
func WithWaitAfterError(wait bool) CallbackOption {
	return func(s *CallbackServer) {
		s.waitAfterError = wait
	}
}

// NewCallbackServer creates a new callback server on the specified port.
// If port is 0, a random available port will be used.
func NewCallbackServer(port int, opts ...CallbackOption) *CallbackServer {
	s := &CallbackServer{
		port:     port,
		timeout:  CallbackTimeout,
		resultCh: make(chan *CallbackResult, 1),
		errorCh:  make(chan error, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start binds the port and begins serving in a background goroutine. It must
// be called before the browser is opened so the redirect has somewhere to
// land. The server stops on its own when the context is cancelled.
// Returns the redirect URI to use in the authorization request.
func (s *CallbackServer) Start(ctx context.Context) (string, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback server on %s: %w", addr, err)
	}

	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.redirectURI = fmt.Sprintf("http://localhost:%d", s.port)
	s.deadline = time.Now().Add(s.timeout)

	s.server = &http.Server{
		Handler:           http.HandlerFunc(s.handleCallback),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errorCh <- err:
			default:
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	logging.Info("Callback", "Local server started on %s", s.redirectURI)
	return s.redirectURI, nil
}

// WaitForCallback blocks until the first completing callback arrives, the
// server's timeout elapses, or ctx is done. On timeout it returns
// ErrCallbackTimeout. The server is stopped before returning.
//
// A provider error is returned as a result with IsError() set, not as an error.
func (s *CallbackServer) WaitForCallback(ctx context.Context) (*CallbackResult, error) {
	waitCtx, cancel := context.WithDeadline(ctx, s.deadline)
	defer cancel()
	defer s.Stop()

	select {
	case result := <-s.resultCh:
		return result, nil
	case err := <-s.errorCh:
		return nil, fmt.Errorf("callback server failed: %w", err)
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrCallbackTimeout
	}
}

// handleCallback dispatches every request the listener receives.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	setSecurityHeaders(w)

	if s.completed.Load() {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	result := &CallbackResult{
		Code:             query.Get("code"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}

	switch {
	case result.Code != "":
		if !s.claim() {
			http.Error(w, "Callback already processed", http.StatusBadRequest)
			return
		}
		logging.Info("Callback", "Authorization code received")
		s.render(w, http.StatusOK, "callback_success.html", nil)
		s.complete(result)

	case result.IsError():
		logging.Warn("Callback", "Provider redirected with error %q: %s", result.Error, result.ErrorDescription)
		data := map[string]interface{}{
			"Error":       result.Error,
			"Description": result.ErrorDescription,
			"Waiting":     s.waitAfterError,
		}
		if s.waitAfterError {
			s.render(w, http.StatusBadRequest, "callback_error.html", data)
			return
		}
		if !s.claim() {
			http.Error(w, "Callback already processed", http.StatusBadRequest)
			return
		}
		s.render(w, http.StatusBadRequest, "callback_error.html", data)
		s.complete(result)

	default:
		logging.Debug("Callback", "Ignoring %s %s", r.Method, r.URL.Path)
		s.render(w, http.StatusOK, "callback_waiting.html", map[string]interface{}{
			"Deadline": s.deadline,
		})
	}
}

// claim reports whether the caller is the one request allowed to complete
// the server.
func (s *CallbackServer) claim() bool {
	claimed := false
	s.claimOnce.Do(func() {
		claimed = true
		s.completed.Store(true)
	})
	return claimed
}

// complete hands the result to WaitForCallback and closes the listener.
// Shutdown waits for this handler to return, so the page is still delivered.
func (s *CallbackServer) complete(result *CallbackResult) {
	s.resultCh <- result
	go s.Stop()
}

func (s *CallbackServer) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := callbackTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.Error("Callback", err, "Failed to render %s", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")
}

// Stop gracefully shuts down the callback server and releases the port.
// It is safe to call more than once.
func (s *CallbackServer) Stop() {
	s.stopOnce.Do(func() {
		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.server.Shutdown(ctx); err != nil {
				logging.Debug("Callback", "Shutdown did not complete cleanly: %v", err)
			}
		}
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}

// GetRedirectURI returns the redirect URI for OAuth configuration.
func (s *CallbackServer) GetRedirectURI() string {
	return s.redirectURI
}

// GetPort returns the port the server is listening on.
func (s *CallbackServer) GetPort() int {
	return s.port
}
