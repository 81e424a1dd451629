package config

import (
	"fmt"
	"time"
)

// Variant selects how the authorization code is obtained.
type Variant string

const (
	// VariantManual asks the operator to paste the authorization code.
	VariantManual Variant = "manual"
	// VariantLocalhost captures the redirect with a local HTTP listener.
	VariantLocalhost Variant = "localhost"
)

// Config holds everything a single OAuth bootstrap run needs.
// It is built once in the command layer and passed to the flows by value.
type Config struct {
	Variant Variant `yaml:"-"`

	ClientID     string   `yaml:"clientID,omitempty"`
	ClientSecret string   `yaml:"clientSecret,omitempty"`
	RedirectURI  string   `yaml:"redirectURI,omitempty"`
	Scopes       []string `yaml:"scopes,omitempty"`

	AuthURL   string `yaml:"authURL,omitempty"`
	TokenURL  string `yaml:"tokenURL,omitempty"`
	RevokeURL string `yaml:"revokeURL,omitempty"`

	CallbackPort    int           `yaml:"callbackPort,omitempty"`
	CallbackTimeout time.Duration `yaml:"callbackTimeout,omitempty"`
	// WaitAfterError keeps the callback server listening after the provider
	// redirects with an error instead of a code.
	WaitAfterError bool `yaml:"waitAfterError,omitempty"`

	TokenFile  string `yaml:"tokenFile,omitempty"`
	UseKeyring bool   `yaml:"keyring,omitempty"`
	// RefreshToken is only used by verify and revoke.
	RefreshToken string `yaml:"-"`
}

// LocalRedirectURI returns the redirect URI served by the callback server.
func (c Config) LocalRedirectURI() string {
	return fmt.Sprintf("http://localhost:%d", c.CallbackPort)
}
