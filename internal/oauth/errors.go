package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrCallbackTimeout is returned when no redirect reached the callback server
// before the deadline.
var ErrCallbackTimeout = errors.New("timeout: no authorization code received")

// ProviderError is a non-2xx answer from one of the provider's endpoints.
// The raw body is always kept; ErrorCode and Description are filled in when
// the body is a JSON object carrying "error" and "error_description".
type ProviderError struct {
	// Operation names the request, e.g. "token exchange".
	Operation   string
	StatusCode  int
	Body        string
	ErrorCode   string
	Description string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s failed with status %d", e.Operation, e.StatusCode)
	if e.Description != "" {
		return msg + ": " + e.Description
	}
	if e.ErrorCode != "" {
		return msg + ": " + e.ErrorCode
	}
	return msg
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ProviderError) Is(target error) bool {
	_, ok := target.(*ProviderError)
	return ok
}

// newProviderError builds a ProviderError, extracting the OAuth error fields
// from the body when it parses as JSON. Parse failures are ignored.
func newProviderError(operation string, status int, body []byte) *ProviderError {
	pe := &ProviderError{
		Operation:  operation,
		StatusCode: status,
		Body:       string(body),
	}

	var fields struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &fields); err == nil {
		pe.ErrorCode = fields.Error
		pe.Description = fields.ErrorDescription
	}
	return pe
}

// CallbackError is the provider reporting a failed authorization through the
// redirect, e.g. error=access_denied when the operator clicked "Cancel".
type CallbackError struct {
	Code        string
	Description string
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	parts := []string{"authorization failed: " + e.Code}
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	return strings.Join(parts, ": ")
}

// Is allows errors.Is() to work with wrapped errors.
func (e *CallbackError) Is(target error) bool {
	_, ok := target.(*CallbackError)
	return ok
}
