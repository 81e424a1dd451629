package cmd

import (
	"fmt"

	"photoauth/internal/config"
	"photoauth/internal/flow"

	"github.com/spf13/cobra"
)

// tokenFlags select a stored refresh token and the client it belongs to.
type tokenFlags struct {
	credentialFlags

	token string
}

func (f *tokenFlags) register(cmd *cobra.Command) {
	f.credentialFlags.register(cmd)
	cmd.Flags().StringVar(&f.token, "token", "", "Refresh token to use (default: "+config.EnvRefreshToken+", the keyring or the token file)")
}

func newVerifyCmd() *cobra.Command {
	var flags tokenFlags

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a refresh token can still be redeemed",
		Long: `Redeem the refresh token once for an access token and show what was granted.

This is the same exchange the consuming service performs at startup, so a
successful run means the token is usable. The access token is not stored.

Examples:
  photoauth verify
  photoauth verify --token-file /etc/photos/refresh_token.txt
  GOOGLE_PHOTOS_REFRESH_TOKEN=1//0g... photoauth verify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, config.VariantManual, &flags)
			if err != nil {
				return err
			}

			token, source, err := flow.LoadRefreshToken(cfg, flags.token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Verifying refresh token from %s...\n", source)

			runner := flow.New(cfg, flow.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
			return runner.Verify(cmd.Context(), token)
		},
	}

	flags.register(cmd)
	return cmd
}

func newRevokeCmd() *cobra.Command {
	var flags tokenFlags

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke a refresh token",
		Long: `Revoke a refresh token at Google.

Revoking is useful when the authorization flow returned no refresh token
because the application was already authorized: revoke the old grant, then
run the flow again. A rejected revocation is only a warning, since the token
may already be invalid. With --keyring the stored keyring entry is removed.

Examples:
  photoauth revoke
  photoauth revoke --token 1//0g...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, config.VariantManual, &flags)
			if err != nil {
				return err
			}

			token, source, err := flow.LoadRefreshToken(cfg, flags.token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revoking refresh token from %s...\n", source)

			runner := flow.New(cfg, flow.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
			return runner.Revoke(cmd.Context(), token)
		},
	}

	flags.register(cmd)
	return cmd
}
