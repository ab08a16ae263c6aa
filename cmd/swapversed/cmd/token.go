package cmd

import (
	"errors"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/swapverse/swapverse/api"
)

const (
	flagAddress = "address"
	flagRole    = "role"
	flagTTL     = "ttl"
)

func addTokenFlags(fs *pflag.FlagSet) {
	fs.String(flagAddress, "", "bech32 address the token acts as")
	fs.String(flagRole, api.RoleUser, "token role (user|admin)")
	fs.Duration(flagTTL, 24*time.Hour, "token lifetime")
}

// TokenCmd signs an API bearer token with the configured secret
func TokenCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the REST API",
		Long: `Issue a bearer token signed with api.jwt-secret.

Example:
  swapversed token --address swap1... --role admin --ttl 1h
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := readConfig(v)
			if err != nil {
				return err
			}
			if cfg.API.JWTSecret == "" {
				return errors.New("api.jwt-secret is not set, run init first")
			}

			address, _ := cmd.Flags().GetString(flagAddress)
			role, _ := cmd.Flags().GetString(flagRole)
			ttl, _ := cmd.Flags().GetDuration(flagTTL)

			if _, err := sdk.AccAddressFromBech32(address); err != nil {
				return err
			}

			token, err := api.NewAuthService([]byte(cfg.API.JWTSecret)).IssueToken(address, role, ttl)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}

	addTokenFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired(flagAddress)
	return cmd
}
