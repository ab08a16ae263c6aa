package cmd

import (
	"errors"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ExportCmd writes the current state as genesis JSON to stdout
func ExportCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export state to genesis JSON",
		Long:  "Export the state of a stopped node as genesis JSON on stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			cfg, err := readConfig(v)
			if err != nil {
				return err
			}

			swapApp, err := openApp(cfg, home, log.NewNopLogger())
			if err != nil {
				return err
			}
			defer swapApp.Close()

			bz, err := swapApp.ExportGenesisJSON(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(bz, '\n'))
			return err
		},
	}
}

// InvariantsCmd checks every invariant against the stored state
func InvariantsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "invariants",
		Short: "Check the invariants of a stopped node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			cfg, err := readConfig(v)
			if err != nil {
				return err
			}

			swapApp, err := openApp(cfg, home, log.NewNopLogger())
			if err != nil {
				return err
			}
			defer swapApp.Close()

			msg, broken := swapApp.CheckInvariants(cmd.Context())
			cmd.Print(msg)
			if broken {
				return errors.New("invariants broken")
			}
			cmd.Println("all invariants hold")
			return nil
		},
	}
}
