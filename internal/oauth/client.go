package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"photoauth/pkg/logging"

	"golang.org/x/oauth2"
)

// DefaultHTTPTimeout is the default timeout for requests to the provider.
const DefaultHTTPTimeout = 30 * time.Second

// Client talks to the provider's token and revocation endpoints.
// Every call is a single request; nothing is retried.
type Client struct {
	httpClient *http.Client
}

// ClientOption configures the OAuth client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new OAuth client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ExchangeCode trades an authorization code for tokens.
//
// A 2xx answer is decoded into a TokenResponse whether or not it carries a
// refresh token; the caller decides what a missing one means. Any other
// status yields a *ProviderError holding the raw body.
func (c *Client) ExchangeCode(ctx context.Context, p Params, code string) (*TokenResponse, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {p.ClientID},
		"client_secret": {p.ClientSecret},
		"redirect_uri":  {p.RedirectURI},
		"grant_type":    {"authorization_code"},
	}

	status, body, err := c.postForm(ctx, p.TokenURL, data)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}

	if status < 200 || status > 299 {
		logging.Debug("Exchange", "Token request failed: status=%d body=%s", status, body)
		return nil, newProviderError("token exchange", status, body)
	}

	return ParseTokenResponse(body)
}

// Revoke invalidates a refresh or access token. A non-200 answer is returned
// as a *ProviderError; Google answers 400 for tokens that are already invalid.
func (c *Client) Revoke(ctx context.Context, revokeURL, token string) error {
	status, body, err := c.postForm(ctx, revokeURL, url.Values{"token": {token}})
	if err != nil {
		return fmt.Errorf("revocation request failed: %w", err)
	}
	if status != http.StatusOK {
		return newProviderError("token revocation", status, body)
	}
	return nil
}

// RefreshAccessToken redeems a refresh token once through golang.org/x/oauth2
// and returns the resulting access token. It proves the refresh token works
// the way the downstream sync service will use it.
func (c *Client) RefreshAccessToken(ctx context.Context, p Params, refreshToken string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	src := p.OAuth2Config().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			pe := newProviderError("token refresh", re.Response.StatusCode, re.Body)
			if pe.ErrorCode == "" {
				pe.ErrorCode = re.ErrorCode
			}
			if pe.Description == "" {
				pe.Description = re.ErrorDescription
			}
			return nil, pe
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return tok, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, data url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}
