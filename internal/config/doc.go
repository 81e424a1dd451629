// Package config provides configuration for a photoauth run.
//
// A Config is assembled once per process, in this order of precedence
// (later wins):
//
//  1. built-in defaults for the chosen Variant (GetDefaultConfig)
//  2. an optional YAML file given with --config
//  3. environment variables (GOOGLE_PHOTOS_CLIENT_ID,
//     GOOGLE_PHOTOS_CLIENT_SECRET, GOOGLE_PHOTOS_REDIRECT_URI for the manual
//     variant, GOOGLE_PHOTOS_REFRESH_TOKEN for verify and revoke)
//  4. command-line flags, applied by the cmd package
//
// The resulting struct is validated with Validate and then handed to the
// flow functions; nothing below the command layer reads the environment.
//
// # File Format
//
//	clientID: 1234.apps.googleusercontent.com
//	clientSecret: s3cr3t
//	scopes:
//	  - https://www.googleapis.com/auth/photoslibrary.appendonly
//	callbackPort: 8080
//	callbackTimeout: 5m
//	tokenFile: refresh_token.txt
package config
