// Package flow drives a single refresh token bootstrap run from the operator's
// point of view.
//
// A Runner owns the configuration, the OAuth client and the operator's
// terminal streams. RunManual reads a pasted authorization code; RunLocalhost
// captures it with oauth.CallbackServer. Both hand the code to the same
// exchange step, which prints the refresh token and writes it to the token
// file (and the system keyring when enabled).
//
// A provider answer without a refresh token is reported as
// OutcomeNoRefreshToken with a nil error: the operator has to revoke the
// earlier grant and run the flow again, which Revoke helps with.
package flow
