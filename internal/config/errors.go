package config

import (
	"fmt"
	"strings"
)

// ConfigurationError is a fatal startup problem reported before any network
// activity takes place.
type ConfigurationError struct {
	Field       string
	Message     string
	Suggestions []string
	Reason      error
}

// Error implements the error interface.
func (ce *ConfigurationError) Error() string {
	if ce.Reason != nil {
		return fmt.Sprintf("%s: %v", ce.Message, ce.Reason)
	}
	return ce.Message
}

// Unwrap returns the underlying error, if any.
func (ce *ConfigurationError) Unwrap() error {
	return ce.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (ce *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

// DetailedError returns the message followed by suggestions, one per line.
func (ce *ConfigurationError) DetailedError() string {
	parts := append([]string{"ERROR: " + ce.Error()}, ce.Suggestions...)
	return strings.Join(parts, "\n")
}

// MissingCredentialsError returns the error reported when the client id or
// secret is absent.
func MissingCredentialsError() *ConfigurationError {
	return &ConfigurationError{
		Field:   "credentials",
		Message: fmt.Sprintf("Please set %s and %s environment variables", EnvClientID, EnvClientSecret),
		Suggestions: []string{
			"Or pass --client-id and --client-secret, or set clientID and clientSecret in the --config file",
		},
	}
}
