package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart <gateway|system>",
	Short: "Restart the gateway application or reboot the device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}

		switch args[0] {
		case "gateway":
			if err := sys.RestartGateway(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "gateway service restarted")
			return nil
		case "system":
			if err := sys.RestartSystem(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reboot initiated")
			return nil
		default:
			return fmt.Errorf("unknown restart target %q (expected gateway or system)", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(restartCmd)
}
