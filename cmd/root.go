package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"photoauth/internal/config"
	"photoauth/internal/flow"
	"photoauth/internal/oauth"
	"photoauth/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution, including a token
	// exchange that returned no refresh token.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general or unexpected error.
	ExitCodeError = 1
	// ExitCodeConfig indicates missing credentials or invalid configuration.
	ExitCodeConfig = 2
	// ExitCodeAborted indicates the operator submitted no authorization code.
	ExitCodeAborted = 3
	// ExitCodeCallbackFailed indicates the local redirect never arrived or
	// carried a provider error.
	ExitCodeCallbackFailed = 4
	// ExitCodeExchangeRejected indicates the provider rejected a request.
	ExitCodeExchangeRejected = 5
)

// Global flags
var (
	configFile string
	debug      bool
	logLevel   string
	logFile    string
	quiet      bool

	logCloser io.Closer
)

// rootCmd represents the base command for the photoauth application.
var rootCmd = &cobra.Command{
	Use:   "photoauth",
	Short: "Obtain a Google Photos OAuth refresh token",
	Long: `photoauth runs the OAuth 2.0 authorization code flow against Google once
and prints the resulting refresh token, so a headless service can later
authenticate to the Google Photos Library API without a browser.

Two variants are available:
  photoauth manual      # paste the authorization code from the browser
  photoauth localhost   # capture the redirect on http://localhost:8080

Credentials are read from GOOGLE_PHOTOS_CLIENT_ID and
GOOGLE_PHOTOS_CLIENT_SECRET, a --config file, or flags.`,
	// Errors are printed by Execute with their exit code mapping.
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogging,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "photoauth version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		_ = logCloser.Close()
	}

	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(getExitCode(err))
	}
}

func initLogging(cmd *cobra.Command, args []string) error {
	level := logging.LevelWarn
	if logLevel != "" {
		parsed, ok := logging.ParseLevel(logLevel)
		if !ok {
			return &config.ConfigurationError{
				Field:       "log-level",
				Message:     fmt.Sprintf("unknown log level %q", logLevel),
				Suggestions: []string{"Use one of: debug, info, warn, error"},
			}
		}
		level = parsed
	}
	if debug {
		level = logging.LevelDebug
	}

	var output io.Writer = cmd.ErrOrStderr()
	if logFile != "" {
		file := logging.FileOutput(logFile)
		logCloser = file
		output = file
	}

	logging.InitForCLI(level, output)
	return nil
}

// printError reports err on w. Configuration errors carry suggestions.
func printError(w io.Writer, err error) {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(w, cfgErr.DetailedError())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfig
	}

	if errors.Is(err, flow.ErrNoCode) {
		return ExitCodeAborted
	}

	var cbErr *oauth.CallbackError
	if errors.Is(err, oauth.ErrCallbackTimeout) || errors.As(err, &cbErr) {
		return ExitCodeCallbackFailed
	}

	var provErr *oauth.ProviderError
	if errors.As(err, &provErr) {
		return ExitCodeExchangeRejected
	}

	// Default to general error
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Optional YAML config file layered under environment variables and flags")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (rotated) instead of stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the progress spinner")

	rootCmd.AddCommand(newManualCmd())
	rootCmd.AddCommand(newLocalhostCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newRevokeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
