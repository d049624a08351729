package lan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/arist0v/candle-gateway/internal/fileedit"
)

// LinkStatus is the live, observed state of the LAN interface, as opposed
// to the configured addressing mode.
type LinkStatus struct {
	Up        bool
	Addresses []string
}

// LinkProber reports the live state of a named interface.
type LinkProber interface {
	Probe(name string) (LinkStatus, error)
}

// Manager reads and writes the LAN addressing configuration. Settings are
// read fresh from disk on every query and written atomically through the
// staging-then-privileged-move path so other readers never see a partial
// stanza.
type Manager struct {
	cfg    Config
	editor fileedit.Editor
	prober LinkProber
	logger *slog.Logger
}

// NewManager creates a Manager with the given collaborators.
func NewManager(cfg Config, editor fileedit.Editor, prober LinkProber, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		editor: editor,
		prober: prober,
		logger: logger.With("component", "lan"),
	}
}

// Settings returns the configured addressing. A missing stanza file is the
// legitimate DHCP state, not an error.
func (m *Manager) Settings() (Settings, error) {
	content, err := m.editor.ReadText(m.cfg.StanzaPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{Mode: ModeDHCP}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("lan: read stanza: %w", err)
	}
	return parseStanza(content, m.cfg.InterfaceName)
}

// Apply validates and persists the addressing configuration.
func (m *Manager) Apply(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	stanza := renderStanza(s, m.cfg.InterfaceName)
	if err := m.editor.WriteTextPrivileged(ctx, m.cfg.StanzaPath, stanza); err != nil {
		return fmt.Errorf("lan: write stanza: %w", err)
	}

	m.logger.Info("lan configuration applied", "interface", m.cfg.InterfaceName, "mode", s.Mode)
	return nil
}

// Status probes the live interface state.
func (m *Manager) Status() (LinkStatus, error) {
	status, err := m.prober.Probe(m.cfg.InterfaceName)
	if err != nil {
		return LinkStatus{}, fmt.Errorf("lan: probe %s: %w", m.cfg.InterfaceName, err)
	}
	return status, nil
}
