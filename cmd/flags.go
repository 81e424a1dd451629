package cmd

import (
	"os"
	"time"

	"photoauth/internal/config"

	"github.com/spf13/cobra"
)

// credentialFlags are shared by every command that talks to the provider.
type credentialFlags struct {
	clientID     string
	clientSecret string
	tokenFile    string
	keyring      bool
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.clientID, "client-id", "", "OAuth client ID (overrides "+config.EnvClientID+")")
	cmd.Flags().StringVar(&f.clientSecret, "client-secret", "", "OAuth client secret (overrides "+config.EnvClientSecret+")")
	cmd.Flags().StringVar(&f.tokenFile, "token-file", config.DefaultTokenFile, "File the refresh token is written to or read from")
	cmd.Flags().BoolVar(&f.keyring, "keyring", false, "Also use the system keyring for the refresh token")
}

func (f *credentialFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("client-id") {
		cfg.ClientID = f.clientID
	}
	if flags.Changed("client-secret") {
		cfg.ClientSecret = f.clientSecret
	}
	if flags.Changed("token-file") {
		cfg.TokenFile = f.tokenFile
	}
	if flags.Changed("keyring") {
		cfg.UseKeyring = f.keyring
	}
}

// authFlags configure the authorization flows.
type authFlags struct {
	credentialFlags

	redirectURI    string
	scopes         []string
	port           int
	timeout        time.Duration
	waitAfterError bool
}

func (f *authFlags) register(cmd *cobra.Command, variant config.Variant) {
	f.credentialFlags.register(cmd)
	cmd.Flags().StringSliceVar(&f.scopes, "scope", nil, "OAuth scope to request (repeatable, replaces the defaults)")

	switch variant {
	case config.VariantManual:
		cmd.Flags().StringVar(&f.redirectURI, "redirect-uri", config.DefaultManualRedirectURI, "Redirect URI registered for the OAuth client (overrides "+config.EnvRedirectURI+")")
	case config.VariantLocalhost:
		cmd.Flags().IntVar(&f.port, "port", config.DefaultCallbackPort, "Local port for the OAuth callback server")
		cmd.Flags().DurationVar(&f.timeout, "timeout", config.DefaultCallbackTimeout, "How long to wait for the OAuth redirect")
		cmd.Flags().BoolVar(&f.waitAfterError, "wait-after-error", false, "Keep waiting for a later redirect after the provider reports an error")
	}
}

func (f *authFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	f.credentialFlags.apply(cmd, cfg)

	flags := cmd.Flags()
	if flags.Changed("scope") {
		cfg.Scopes = append([]string(nil), f.scopes...)
	}
	if flags.Changed("redirect-uri") {
		cfg.RedirectURI = f.redirectURI
	}
	if flags.Changed("port") {
		cfg.CallbackPort = f.port
	}
	if flags.Changed("timeout") {
		cfg.CallbackTimeout = f.timeout
	}
	if flags.Changed("wait-after-error") {
		cfg.WaitAfterError = f.waitAfterError
	}
}

// flagApplier layers command-line flags over a loaded configuration.
type flagApplier interface {
	apply(cmd *cobra.Command, cfg *config.Config)
}

// loadConfig resolves the configuration for a command: defaults, the
// --config file, the environment, then flags. The result is validated.
func loadConfig(cmd *cobra.Command, variant config.Variant, flags flagApplier) (config.Config, error) {
	cfg, err := config.Load(variant, config.LoadOptions{
		ConfigFile: configFile,
		Getenv:     os.Getenv,
	})
	if err != nil {
		return config.Config{}, err
	}

	flags.apply(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
