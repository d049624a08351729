// Package hostname changes the host's name across its three locations (the
// hostname file, the live kernel value, and the hosts-file loopback alias)
// as one ordered transition with rollback of completed steps on failure.
package hostname

import "errors"

// DefaultHostnameFile is the default path of the hostname file.
const DefaultHostnameFile = "/etc/hostname"

// DefaultHostsFile is the default path of the hosts file.
const DefaultHostsFile = "/etc/hosts"

// DefaultMDNSService is the default name-resolution/discovery service that
// advertises the hostname on the local network.
const DefaultMDNSService = "avahi-daemon"

// DefaultLoopbackAlias is the loopback address that anchors the hostname
// alias line in the hosts file.
const DefaultLoopbackAlias = "127.0.1.1"

// Config holds the configuration for hostname transitions.
type Config struct {
	// HostnameFile is the file holding exactly one trimmed line: the
	// persistent hostname. Default: /etc/hostname.
	HostnameFile string `yaml:"hostname_file"`

	// HostsFile is the hosts file containing the loopback alias line.
	// Default: /etc/hosts.
	HostsFile string `yaml:"hosts_file"`

	// MDNSService is the discovery service restarted after a hostname
	// change so it advertises the new name. Default: avahi-daemon.
	MDNSService string `yaml:"mdns_service"`

	// LoopbackAlias is the address prefix anchoring the hosts-file alias
	// line; only lines starting with it are touched. Default: 127.0.1.1.
	LoopbackAlias string `yaml:"loopback_alias"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.HostnameFile == "" {
		c.HostnameFile = DefaultHostnameFile
	}
	if c.HostsFile == "" {
		c.HostsFile = DefaultHostsFile
	}
	if c.MDNSService == "" {
		c.MDNSService = DefaultMDNSService
	}
	if c.LoopbackAlias == "" {
		c.LoopbackAlias = DefaultLoopbackAlias
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.HostnameFile == "" {
		return errors.New("hostname: config: HostnameFile is required")
	}
	if c.HostsFile == "" {
		return errors.New("hostname: config: HostsFile is required")
	}
	if c.MDNSService == "" {
		return errors.New("hostname: config: MDNSService is required")
	}
	if c.LoopbackAlias == "" {
		return errors.New("hostname: config: LoopbackAlias is required")
	}
	return nil
}
