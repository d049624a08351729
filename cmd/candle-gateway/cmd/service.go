package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arist0v/candle-gateway/internal/gateway"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Query or toggle a managed system service",
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status <dhcp|mdns|ssh>",
	Short: "Print whether the service is running",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}

		active, err := serviceActive(cmd.Context(), sys, args[0])
		if err != nil {
			return err
		}
		if active {
			fmt.Fprintln(cmd.OutOrStdout(), "active")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "inactive")
		}
		return nil
	},
}

var serviceEnableCmd = &cobra.Command{
	Use:   "enable <dhcp|mdns|ssh>",
	Short: "Start and enable the service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setService(cmd, args[0], true)
	},
}

var serviceDisableCmd = &cobra.Command{
	Use:   "disable <dhcp|mdns|ssh>",
	Short: "Stop and disable the service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setService(cmd, args[0], false)
	},
}

func serviceActive(ctx context.Context, sys *gateway.System, name string) (bool, error) {
	switch name {
	case "dhcp":
		return sys.DHCPServerEnabled(ctx), nil
	case "mdns":
		return sys.MDNSEnabled(ctx), nil
	case "ssh":
		return sys.SSHEnabled(ctx), nil
	default:
		return false, fmt.Errorf("unknown service %q (expected dhcp, mdns, or ssh)", name)
	}
}

func setService(cmd *cobra.Command, name string, enabled bool) error {
	sys, err := buildSystem()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch name {
	case "dhcp":
		err = sys.SetDHCPServerEnabled(ctx, enabled)
	case "mdns":
		err = sys.SetMDNSEnabled(ctx, enabled)
	case "ssh":
		err = sys.SetSSHEnabled(ctx, enabled)
	default:
		return fmt.Errorf("unknown service %q (expected dhcp, mdns, or ssh)", name)
	}
	if err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, state)
	return nil
}

func init() {
	serviceCmd.AddCommand(serviceStatusCmd)
	serviceCmd.AddCommand(serviceEnableCmd)
	serviceCmd.AddCommand(serviceDisableCmd)
	rootCmd.AddCommand(serviceCmd)
}
