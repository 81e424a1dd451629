package oauth

import (
	"golang.org/x/oauth2"
)

// Params are the OAuth request parameters for one run. They are built once
// and used both for the authorization URL and for the token exchange, so the
// redirect URI sent to the token endpoint always matches the one the code
// was issued for.
type Params struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// Scopes are joined with a single space, in order.
	Scopes []string

	AuthURL  string
	TokenURL string
}

// OAuth2Config converts the parameters to a golang.org/x/oauth2 config.
// Client credentials are sent in the request body, as Google expects for
// installed applications.
func (p Params) OAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURI,
		Scopes:       append([]string(nil), p.Scopes...),
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.AuthURL,
			TokenURL:  p.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// BuildAuthorizationURL returns the consent URL the operator opens in a
// browser. Besides client_id, redirect_uri and scope it always carries
// response_type=code, access_type=offline and prompt=consent; the last two
// make Google issue a refresh token even if the app was authorized before.
//
// No state parameter is sent: the manual flow has no way to check it.
func BuildAuthorizationURL(p Params) string {
	return p.OAuth2Config().AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}
