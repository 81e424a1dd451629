package cmd

import (
	"photoauth/internal/config"
	"photoauth/internal/flow"
	"photoauth/pkg/logging"

	"github.com/spf13/cobra"
)

func newLocalhostCmd() *cobra.Command {
	var flags authFlags

	cmd := &cobra.Command{
		Use:     "localhost",
		Aliases: []string{"local"},
		Short:   "Get a refresh token by capturing the redirect on localhost",
		Long: `Get a Google Photos refresh token by capturing the OAuth redirect locally.

A temporary HTTP server is started on http://localhost:8080 before the consent
URL is opened. Once the browser is redirected back with an authorization code
the server shuts down, the code is exchanged and the refresh token is printed
and saved to refresh_token.txt.

http://localhost:<port> must be registered as a redirect URI for the OAuth
client. The wait gives up after --timeout (5 minutes by default).

Examples:
  photoauth localhost
  photoauth localhost --port 9090 --timeout 2m
  photoauth localhost --keyring`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, config.VariantLocalhost, &flags)
			if err != nil {
				return err
			}

			runner := flow.New(cfg,
				flow.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
				flow.WithQuiet(quiet),
			)
			outcome, err := runner.RunLocalhost(cmd.Context())
			logging.Debug("Localhost", "Flow finished with outcome %s", outcome)
			return err
		},
	}

	flags.register(cmd, config.VariantLocalhost)
	return cmd
}
