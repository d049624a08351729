// Package gateway wires the host configuration subsystems together and
// exposes the operator-facing surface of the device.
package gateway

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arist0v/candle-gateway/internal/fileedit"
	"github.com/arist0v/candle-gateway/internal/hostname"
	"github.com/arist0v/candle-gateway/internal/lan"
	"github.com/arist0v/candle-gateway/internal/privexec"
)

const (
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultDHCPService is the default DHCP server unit.
	DefaultDHCPService = "dnsmasq"

	// DefaultSSHService is the default SSH server unit.
	DefaultSSHService = "ssh"

	// DefaultGatewayService is the default gateway application unit.
	DefaultGatewayService = "candle-gateway"
)

// Config is the top-level configuration for the gateway host configuration
// subsystem. It aggregates all subsystem configurations and is populated
// from a YAML configuration file via ParseConfig.
type Config struct {
	// LogLevel is the log level: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// DHCPService is the systemd unit of the DHCP server.
	// Default: dnsmasq
	DHCPService string `yaml:"dhcp_service"`

	// SSHService is the systemd unit of the SSH server.
	// Default: ssh
	SSHService string `yaml:"ssh_service"`

	// GatewayService is the systemd unit of the gateway application.
	// Default: candle-gateway
	GatewayService string `yaml:"gateway_service"`

	Exec     privexec.Config `yaml:"exec"`
	Files    fileedit.Config `yaml:"files"`
	Hostname hostname.Config `yaml:"hostname"`
	LAN      lan.Config      `yaml:"lan"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.DHCPService == "" {
		c.DHCPService = DefaultDHCPService
	}
	if c.SSHService == "" {
		c.SSHService = DefaultSSHService
	}
	if c.GatewayService == "" {
		c.GatewayService = DefaultGatewayService
	}
	c.Exec.ApplyDefaults()
	c.Files.ApplyDefaults()
	c.Hostname.ApplyDefaults()
	c.LAN.ApplyDefaults()
}

// Validate checks that required fields are set and values are acceptable.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("gateway: config: invalid log level %q", c.LogLevel)
	}
	if c.DHCPService == "" {
		return errors.New("gateway: config: DHCPService is required")
	}
	if c.SSHService == "" {
		return errors.New("gateway: config: SSHService is required")
	}
	if c.GatewayService == "" {
		return errors.New("gateway: config: GatewayService is required")
	}
	if err := c.Exec.Validate(); err != nil {
		return err
	}
	if err := c.Files.Validate(); err != nil {
		return err
	}
	if err := c.Hostname.Validate(); err != nil {
		return err
	}
	if err := c.LAN.Validate(); err != nil {
		return err
	}
	return nil
}

// ParseConfig reads a YAML configuration file and returns a Config. It
// applies defaults and validates the configuration. A missing file yields
// the defaults.
func ParseConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("gateway: config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("gateway: config: read %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
