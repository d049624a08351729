package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arist0v/candle-gateway/internal/hostname"
)

var hostnameCmd = &cobra.Command{
	Use:   "hostname",
	Short: "Get or set the device hostname",
}

var hostnameGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current hostname",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sys.Hostname())
		return nil
	},
}

var hostnameSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Change the hostname across the hostname file, kernel, and hosts file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}

		if err := sys.SetHostname(cmd.Context(), args[0]); err != nil {
			var stepErr *hostname.StepError
			if errors.As(err, &stepErr) {
				return fmt.Errorf("set hostname failed at step %s: %w", stepErr.Step, err)
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), sys.Hostname())
		return nil
	},
}

func init() {
	hostnameCmd.AddCommand(hostnameGetCmd)
	hostnameCmd.AddCommand(hostnameSetCmd)
	rootCmd.AddCommand(hostnameCmd)
}
