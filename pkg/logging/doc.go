// Package logging provides a small structured logging layer for photoauth,
// built on Go's standard slog package.
//
// # Log Levels
//   - **Debug**: request and callback details useful while diagnosing a flow
//   - **Info**: progress of the OAuth handshake
//   - **Warn**: non-fatal problems such as a browser that failed to open
//   - **Error**: failures that end the run
//
// Every entry carries a subsystem attribute so log lines from the callback
// server, the token exchange and the command layer can be told apart.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Callback", "Listening on %s", addr)
//	logging.Warn("Browser", "Could not open browser: %v", err)
//	logging.Error("Exchange", err, "Token request failed")
//
// Log output goes to the configured writer (stderr for the CLI). Operator
// facing output such as the authorization URL and the refresh token is
// written by the command layer to stdout and never through this package.
package logging
