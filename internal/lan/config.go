// Package lan reads and writes the LAN addressing configuration of the
// device's wired interface and probes its live state.
package lan

import "errors"

// DefaultInterfaceName is the default wired LAN interface.
const DefaultInterfaceName = "eth0"

// DefaultStanzaPath is the default path of the interface stanza file. A
// missing file means the interface is configured for DHCP.
const DefaultStanzaPath = "/etc/network/interfaces.d/eth0"

// Config holds the configuration for LAN addressing management.
type Config struct {
	// InterfaceName is the wired LAN interface. Default: eth0.
	InterfaceName string `yaml:"interface_name"`

	// StanzaPath is the interface stanza file read on every query and
	// replaced atomically on every write. Default:
	// /etc/network/interfaces.d/eth0.
	StanzaPath string `yaml:"stanza_path"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.InterfaceName == "" {
		c.InterfaceName = DefaultInterfaceName
	}
	if c.StanzaPath == "" {
		c.StanzaPath = DefaultStanzaPath
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.InterfaceName == "" {
		return errors.New("lan: config: InterfaceName is required")
	}
	if c.StanzaPath == "" {
		return errors.New("lan: config: StanzaPath is required")
	}
	return nil
}
