package config

import "time"

const (
	// DefaultAuthURL is Google's v2 authorization endpoint.
	DefaultAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
	// DefaultTokenURL is Google's token endpoint.
	DefaultTokenURL = "https://oauth2.googleapis.com/token"
	// DefaultRevokeURL is Google's token revocation endpoint.
	DefaultRevokeURL = "https://oauth2.googleapis.com/revoke"

	// DefaultManualRedirectURI is the out-of-band redirect used by the manual flow.
	DefaultManualRedirectURI = "urn:ietf:wg:oauth:2.0:oob"

	DefaultCallbackPort    = 8080
	DefaultCallbackTimeout = 300 * time.Second

	// DefaultTokenFile receives the refresh token on success.
	DefaultTokenFile = "refresh_token.txt"
)

// Environment variables read by Load.
const (
	EnvClientID     = "GOOGLE_PHOTOS_CLIENT_ID"
	EnvClientSecret = "GOOGLE_PHOTOS_CLIENT_SECRET"
	EnvRedirectURI  = "GOOGLE_PHOTOS_REDIRECT_URI"
	EnvRefreshToken = "GOOGLE_PHOTOS_REFRESH_TOKEN"
)

// Placeholder values shipped in example configs. They count as unset.
const (
	placeholderClientID     = "YOUR_CLIENT_ID_HERE"
	placeholderClientSecret = "YOUR_CLIENT_SECRET_HERE"
)

// ManualScopes are requested by the manual flow.
var ManualScopes = []string{
	"https://www.googleapis.com/auth/photoslibrary",
	"https://www.googleapis.com/auth/photoslibrary.appendonly",
}

// LocalhostScopes are requested by the localhost flow. Google restricted the
// library scopes in March 2025, so only app-created data is reachable.
var LocalhostScopes = []string{
	"https://www.googleapis.com/auth/photoslibrary.appendonly",
	"https://www.googleapis.com/auth/photoslibrary.readonly.appcreateddata",
	"https://www.googleapis.com/auth/photoslibrary.edit.appcreateddata",
}

// GetDefaultConfig returns the defaults for the given variant.
func GetDefaultConfig(variant Variant) Config {
	cfg := Config{
		Variant:         variant,
		AuthURL:         DefaultAuthURL,
		TokenURL:        DefaultTokenURL,
		RevokeURL:       DefaultRevokeURL,
		CallbackPort:    DefaultCallbackPort,
		CallbackTimeout: DefaultCallbackTimeout,
		TokenFile:       DefaultTokenFile,
	}

	switch variant {
	case VariantLocalhost:
		cfg.Scopes = append([]string(nil), LocalhostScopes...)
	default:
		cfg.RedirectURI = DefaultManualRedirectURI
		cfg.Scopes = append([]string(nil), ManualScopes...)
	}
	return cfg
}
