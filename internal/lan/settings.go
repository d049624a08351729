package lan

import (
	"fmt"
	"net"
	"strings"
)

// Mode is the LAN addressing mode.
type Mode string

const (
	// ModeDHCP lets the interface acquire its address from a DHCP server.
	ModeDHCP Mode = "dhcp"
	// ModeStatic assigns a fixed address from StaticOptions.
	ModeStatic Mode = "static"
)

// StaticOptions carries the fixed addressing of a static interface.
type StaticOptions struct {
	Address string   `yaml:"address"`
	Netmask string   `yaml:"netmask"`
	Gateway string   `yaml:"gateway,omitempty"`
	DNS     []string `yaml:"dns,omitempty"`
}

// Settings is the persisted LAN addressing configuration. Static is only
// meaningful under ModeStatic and must be nil under ModeDHCP.
type Settings struct {
	Mode   Mode           `yaml:"mode"`
	Static *StaticOptions `yaml:"static,omitempty"`
}

// Validate checks the mode/options invariant and the address syntax.
func (s Settings) Validate() error {
	switch s.Mode {
	case ModeDHCP:
		if s.Static != nil {
			return fmt.Errorf("lan: settings: static options must be absent under %s mode", ModeDHCP)
		}
		return nil
	case ModeStatic:
		if s.Static == nil {
			return fmt.Errorf("lan: settings: static options are required under %s mode", ModeStatic)
		}
		if net.ParseIP(s.Static.Address) == nil {
			return fmt.Errorf("lan: settings: invalid address %q", s.Static.Address)
		}
		if net.ParseIP(s.Static.Netmask) == nil {
			return fmt.Errorf("lan: settings: invalid netmask %q", s.Static.Netmask)
		}
		if s.Static.Gateway != "" && net.ParseIP(s.Static.Gateway) == nil {
			return fmt.Errorf("lan: settings: invalid gateway %q", s.Static.Gateway)
		}
		for _, d := range s.Static.DNS {
			if net.ParseIP(d) == nil {
				return fmt.Errorf("lan: settings: invalid dns server %q", d)
			}
		}
		return nil
	default:
		return fmt.Errorf("lan: settings: unknown mode %q", s.Mode)
	}
}

// parseStanza extracts Settings from an ifupdown-style interface stanza.
// Content without an iface line for the named interface parses as DHCP.
func parseStanza(content, ifname string) (Settings, error) {
	settings := Settings{Mode: ModeDHCP}
	inStanza := false

	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "iface" {
			inStanza = len(fields) >= 4 && fields[1] == ifname && fields[2] == "inet"
			if inStanza && fields[3] == string(ModeStatic) {
				settings.Mode = ModeStatic
				settings.Static = &StaticOptions{}
			}
			continue
		}

		if !inStanza || settings.Static == nil || len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "address":
			settings.Static.Address = fields[1]
		case "netmask":
			settings.Static.Netmask = fields[1]
		case "gateway":
			settings.Static.Gateway = fields[1]
		case "dns-nameservers":
			settings.Static.DNS = append([]string(nil), fields[1:]...)
		}
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("lan: parse %s stanza: %w", ifname, err)
	}
	return settings, nil
}

// renderStanza produces the ifupdown stanza for the given settings. The
// settings must already be validated.
func renderStanza(s Settings, ifname string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "auto %s\n", ifname)

	if s.Mode == ModeDHCP {
		fmt.Fprintf(&b, "iface %s inet dhcp\n", ifname)
		return b.String()
	}

	fmt.Fprintf(&b, "iface %s inet static\n", ifname)
	fmt.Fprintf(&b, "    address %s\n", s.Static.Address)
	fmt.Fprintf(&b, "    netmask %s\n", s.Static.Netmask)
	if s.Static.Gateway != "" {
		fmt.Fprintf(&b, "    gateway %s\n", s.Static.Gateway)
	}
	if len(s.Static.DNS) > 0 {
		fmt.Fprintf(&b, "    dns-nameservers %s\n", strings.Join(s.Static.DNS, " "))
	}
	return b.String()
}
