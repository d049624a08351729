package gateway

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("ParseConfig() = %v, want defaults for missing file", err)
	}

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.DHCPService != DefaultDHCPService {
		t.Errorf("DHCPService = %q, want %q", cfg.DHCPService, DefaultDHCPService)
	}
	if cfg.Hostname.HostnameFile != "/etc/hostname" {
		t.Errorf("Hostname.HostnameFile = %q, want /etc/hostname", cfg.Hostname.HostnameFile)
	}
	if cfg.LAN.InterfaceName != "eth0" {
		t.Errorf("LAN.InterfaceName = %q, want eth0", cfg.LAN.InterfaceName)
	}
}

func TestParseConfig_ReadsYAML(t *testing.T) {
	content := `log_level: debug
dhcp_service: isc-dhcp-server
exec:
  sudo_path: /usr/bin/sudo
  command_timeout: 45s
hostname:
  mdns_service: mdns-publisher
lan:
  interface_name: end0
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) = %v", path, err)
	}

	cfg, err := ParseConfig(path)
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.DHCPService != "isc-dhcp-server" {
		t.Errorf("DHCPService = %q, want isc-dhcp-server", cfg.DHCPService)
	}
	if cfg.Exec.SudoPath != "/usr/bin/sudo" {
		t.Errorf("Exec.SudoPath = %q, want /usr/bin/sudo", cfg.Exec.SudoPath)
	}
	if cfg.Exec.CommandTimeout != 45*time.Second {
		t.Errorf("Exec.CommandTimeout = %v, want 45s", cfg.Exec.CommandTimeout)
	}
	if cfg.Hostname.MDNSService != "mdns-publisher" {
		t.Errorf("Hostname.MDNSService = %q, want mdns-publisher", cfg.Hostname.MDNSService)
	}
	if cfg.LAN.InterfaceName != "end0" {
		t.Errorf("LAN.InterfaceName = %q, want end0", cfg.LAN.InterfaceName)
	}

	// Unset fields still get defaults.
	if cfg.SSHService != DefaultSSHService {
		t.Errorf("SSHService = %q, want default %q", cfg.SSHService, DefaultSSHService)
	}
}

func TestParseConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad log level", "log_level: loud\n"},
		{"bad yaml", "log_level: [\n"},
		{"sub-config validation propagates", "exec:\n  command_timeout: 1ms\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile(%q) = %v", path, err)
			}

			if _, err := ParseConfig(path); err == nil {
				t.Error("ParseConfig() = nil, want error")
			}
		})
	}
}
