package oauth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TokenResponse is a decoded token endpoint response. Only the presence of
// individual keys is checked; no schema is imposed on the object.
type TokenResponse struct {
	Fields map[string]interface{}
	Raw    []byte
}

// ParseTokenResponse decodes a JSON object returned by the token endpoint.
func ParseTokenResponse(body []byte) (*TokenResponse, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("failed to parse token response: expected a JSON object")
	}
	return &TokenResponse{Fields: fields, Raw: body}, nil
}

// Has reports whether key is present in the response.
func (t *TokenResponse) Has(key string) bool {
	_, ok := t.Fields[key]
	return ok
}

// String returns the value of key if it is a string.
func (t *TokenResponse) String(key string) string {
	s, _ := t.Fields[key].(string)
	return s
}

// RefreshToken returns the refresh token, or "" when the provider withheld it.
func (t *TokenResponse) RefreshToken() string {
	return t.String("refresh_token")
}

// HasRefreshToken reports whether a non-empty refresh token was issued.
func (t *TokenResponse) HasRefreshToken() bool {
	return t.RefreshToken() != ""
}

// Scopes returns the granted scopes, if the provider reported them.
func (t *TokenResponse) Scopes() []string {
	return strings.Fields(t.String("scope"))
}

// Pretty returns the raw response indented for display.
func (t *TokenResponse) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, t.Raw, "", "  "); err != nil {
		return string(t.Raw)
	}
	return buf.String()
}
