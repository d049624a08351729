package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arist0v/candle-gateway/internal/lan"
)

var (
	lanAddress string
	lanNetmask string
	lanGateway string
	lanDNS     []string
)

var lanCmd = &cobra.Command{
	Use:   "lan",
	Short: "Get or set the LAN addressing mode",
}

var lanGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the configured LAN mode and live interface state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}

		settings, err := sys.LANSettings()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mode: %s\n", settings.Mode)
		if settings.Static != nil {
			fmt.Fprintf(out, "address: %s\n", settings.Static.Address)
			fmt.Fprintf(out, "netmask: %s\n", settings.Static.Netmask)
			if settings.Static.Gateway != "" {
				fmt.Fprintf(out, "gateway: %s\n", settings.Static.Gateway)
			}
			if len(settings.Static.DNS) > 0 {
				fmt.Fprintf(out, "dns: %s\n", strings.Join(settings.Static.DNS, " "))
			}
		}

		// Live state is advisory; a probe failure doesn't fail the query.
		if status, err := sys.LANStatus(); err == nil {
			fmt.Fprintf(out, "link up: %t\n", status.Up)
			if len(status.Addresses) > 0 {
				fmt.Fprintf(out, "live addresses: %s\n", strings.Join(status.Addresses, " "))
			}
		}
		return nil
	},
}

var lanSetCmd = &cobra.Command{
	Use:   "set <static|dhcp>",
	Short: "Set the LAN addressing mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}

		settings := lan.Settings{Mode: lan.Mode(args[0])}
		if settings.Mode == lan.ModeStatic {
			settings.Static = &lan.StaticOptions{
				Address: lanAddress,
				Netmask: lanNetmask,
				Gateway: lanGateway,
				DNS:     lanDNS,
			}
		}

		if err := sys.SetLANSettings(cmd.Context(), settings); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "lan mode set to %s\n", settings.Mode)
		return nil
	},
}

func init() {
	lanSetCmd.Flags().StringVar(&lanAddress, "address", "", "static IPv4 address")
	lanSetCmd.Flags().StringVar(&lanNetmask, "netmask", "", "static netmask")
	lanSetCmd.Flags().StringVar(&lanGateway, "gateway", "", "default gateway")
	lanSetCmd.Flags().StringSliceVar(&lanDNS, "dns", nil, "DNS servers")

	lanCmd.AddCommand(lanGetCmd)
	lanCmd.AddCommand(lanSetCmd)
	rootCmd.AddCommand(lanCmd)
}
