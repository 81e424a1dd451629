package oauth

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		ClientID:     "client-123.apps.googleusercontent.com",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:8080",
		Scopes: []string{
			"https://www.googleapis.com/auth/photoslibrary.appendonly",
			"https://www.googleapis.com/auth/photoslibrary.readonly.appcreateddata",
		},
		AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL: "https://oauth2.googleapis.com/token",
	}
}

func TestBuildAuthorizationURL(t *testing.T) {
	p := testParams()

	raw := BuildAuthorizationURL(p)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "/o/oauth2/v2/auth", u.Path)

	q := u.Query()
	assert.Equal(t, p.ClientID, q.Get("client_id"))
	assert.Equal(t, p.RedirectURI, q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.False(t, q.Has("state"), "no state parameter expected")

	assert.Len(t, q, 6)
}

func TestBuildAuthorizationURL_ScopeOrder(t *testing.T) {
	tests := []struct {
		name   string
		scopes []string
	}{
		{name: "single", scopes: []string{"https://www.googleapis.com/auth/photoslibrary"}},
		{name: "two", scopes: []string{"b-scope", "a-scope"}},
		{name: "three reversed", scopes: []string{"z", "https://x.example/y?q=1", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			p.Scopes = tt.scopes

			u, err := url.Parse(BuildAuthorizationURL(p))
			require.NoError(t, err)

			values := u.Query()["scope"]
			require.Len(t, values, 1, "exactly one scope parameter expected")
			assert.Equal(t, strings.Join(tt.scopes, " "), values[0])
		})
	}
}

func TestBuildAuthorizationURL_EncodesRedirect(t *testing.T) {
	p := testParams()
	p.RedirectURI = "urn:ietf:wg:oauth:2.0:oob"

	raw := BuildAuthorizationURL(p)

	assert.Contains(t, raw, "redirect_uri=urn%3Aietf%3Awg%3Aoauth%3A2.0%3Aoob")
	assert.NotContains(t, raw, "https://www.googleapis.com/auth/photoslibrary.appendonly")
}

func TestParams_OAuth2Config(t *testing.T) {
	p := testParams()

	cfg := p.OAuth2Config()

	assert.Equal(t, p.ClientID, cfg.ClientID)
	assert.Equal(t, p.ClientSecret, cfg.ClientSecret)
	assert.Equal(t, p.RedirectURI, cfg.RedirectURL)
	assert.Equal(t, p.TokenURL, cfg.Endpoint.TokenURL)

	cfg.Scopes[0] = "mutated"
	assert.NotEqual(t, "mutated", p.Scopes[0], "scopes must be copied")
}
