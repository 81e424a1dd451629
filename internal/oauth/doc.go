// Package oauth implements the client side of a one-shot OAuth 2.0
// authorization code handshake against Google.
//
// # Components
//
//   - BuildAuthorizationURL: the consent URL (offline access, forced consent)
//   - CallbackServer: a temporary local HTTP listener that captures a single
//     redirect and then closes
//   - Client: token exchange, refresh token verification and revocation
//   - OpenBrowser: best-effort launch of the system browser
//
// # Callback Server
//
// The server binds its port before the browser is opened and delivers at
// most one CallbackResult through a buffered channel. WaitForCallback does a
// bounded wait on that channel and stops the server before returning:
//
//	server := oauth.NewCallbackServer(8080, oauth.WithTimeout(5*time.Minute))
//	redirectURI, err := server.Start(ctx)
//	// ... open the authorization URL built with redirectURI ...
//	result, err := server.WaitForCallback(ctx)
//
// # Errors
//
// Non-2xx answers from the provider are returned as *ProviderError with the
// raw body attached. A redirect carrying error=... is reported through
// CallbackResult.Err as a *CallbackError.
package oauth
