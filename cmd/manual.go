package cmd

import (
	"photoauth/internal/config"
	"photoauth/internal/flow"
	"photoauth/pkg/logging"

	"github.com/spf13/cobra"
)

func newManualCmd() *cobra.Command {
	var flags authFlags

	cmd := &cobra.Command{
		Use:     "manual",
		Aliases: []string{"paste"},
		Short:   "Get a refresh token by pasting the authorization code",
		Long: `Get a Google Photos refresh token by pasting the authorization code.

The consent URL is printed and opened in the default browser. After granting
access, copy the authorization code (or the whole redirect URL) and paste it
at the prompt. The refresh token is printed and saved to refresh_token.txt.

The redirect URI defaults to urn:ietf:wg:oauth:2.0:oob and can be changed
with GOOGLE_PHOTOS_REDIRECT_URI or --redirect-uri. It must be registered for
the OAuth client in the Google Cloud Console.

Examples:
  photoauth manual
  photoauth manual --redirect-uri http://localhost:8080
  photoauth manual --scope https://www.googleapis.com/auth/photoslibrary.readonly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, config.VariantManual, &flags)
			if err != nil {
				return err
			}

			runner := flow.New(cfg,
				flow.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
				flow.WithQuiet(quiet),
			)
			outcome, err := runner.RunManual(cmd.Context())
			logging.Debug("Manual", "Flow finished with outcome %s", outcome)
			return err
		},
	}

	flags.register(cmd, config.VariantManual)
	return cmd
}
