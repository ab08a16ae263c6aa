package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapverse/swapverse/app"
)

const (
	flagHome      = "home"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// DefaultNodeHome is the default home directory of swapversed
var DefaultNodeHome = func() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".swapverse"
	}
	return filepath.Join(userHome, ".swapverse")
}()

// NewRootCmd creates the root command of swapversed. Every subcommand reads
// its configuration through the same viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          "swapversed",
		Short:        "Swapverse two-asset liquidity pool engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.SetConfig()

			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			if err := v.BindPFlag("log-level", cmd.Flags().Lookup(flagLogLevel)); err != nil {
				return err
			}
			if err := v.BindPFlag("log-format", cmd.Flags().Lookup(flagLogFormat)); err != nil {
				return err
			}
			return loadConfig(v, home)
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagLogFormat, "json", "log format (json|plain)")

	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(v),
		TokenCmd(v),
		ExportCmd(v),
		InvariantsCmd(v),
		DemoCmd(),
	)

	return rootCmd
}
