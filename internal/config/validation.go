package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message})
}

// HasCredentials reports whether a usable client id and secret are present.
// The placeholders from example configs do not count.
func (c Config) HasCredentials() bool {
	id := strings.TrimSpace(c.ClientID)
	secret := strings.TrimSpace(c.ClientSecret)
	return id != "" && secret != "" && id != placeholderClientID && secret != placeholderClientSecret
}

// Validate checks a configuration for a full authorization run.
// Missing credentials are reported as a *ConfigurationError with operator
// guidance; everything else is collected into ValidationErrors.
func (c Config) Validate() error {
	if !c.HasCredentials() {
		return MissingCredentialsError()
	}

	var errs ValidationErrors
	if len(c.Scopes) == 0 {
		errs.Add("scopes", "at least one scope is required")
	}
	for i, s := range c.Scopes {
		if strings.TrimSpace(s) == "" {
			errs.Add(fmt.Sprintf("scopes[%d]", i), "scope must not be empty")
		}
	}
	validateEndpoint(&errs, "authURL", c.AuthURL)
	validateEndpoint(&errs, "tokenURL", c.TokenURL)

	switch c.Variant {
	case VariantLocalhost:
		if c.CallbackPort <= 0 || c.CallbackPort > 65535 {
			errs.Add("callbackPort", fmt.Sprintf("must be between 1 and 65535, got %d", c.CallbackPort))
		}
		if c.CallbackTimeout <= 0 {
			errs.Add("callbackTimeout", "must be positive")
		}
	case VariantManual:
		if strings.TrimSpace(c.RedirectURI) == "" {
			errs.Add("redirectURI", "is required")
		}
	default:
		errs.Add("variant", fmt.Sprintf("unknown variant %q", c.Variant))
	}

	if strings.TrimSpace(c.TokenFile) == "" {
		errs.Add("tokenFile", "is required")
	}

	if errs.HasErrors() {
		return &ConfigurationError{Field: "config", Message: "invalid configuration", Reason: errs}
	}
	return nil
}

func validateEndpoint(errs *ValidationErrors, field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs.Add(field, fmt.Sprintf("must be an absolute URL, got %q", raw))
	}
}
