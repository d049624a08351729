package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arist0v/candle-gateway/internal/fileedit"
	"github.com/arist0v/candle-gateway/internal/hostname"
	"github.com/arist0v/candle-gateway/internal/lan"
	"github.com/arist0v/candle-gateway/internal/privexec"
	"github.com/arist0v/candle-gateway/internal/services"
)

// System is the operator-facing surface of the device's host configuration.
// A mutex serializes operator actions: the underlying mutators assume a
// single caller at a time and provide no locking of their own.
type System struct {
	mu sync.Mutex

	cfg      Config
	runner   privexec.Runner
	services services.Controller
	hostname *hostname.Manager
	lan      *lan.Manager
	logger   *slog.Logger
}

// NewSystem creates a System from pre-built collaborators.
func NewSystem(cfg Config, runner privexec.Runner, svc services.Controller, host *hostname.Manager, lanMgr *lan.Manager, logger *slog.Logger) *System {
	return &System{
		cfg:      cfg,
		runner:   runner,
		services: svc,
		hostname: host,
		lan:      lanMgr,
		logger:   logger.With("component", "gateway"),
	}
}

// Build wires a System against the real host: os/exec command runner,
// privileged file editor, systemctl controller, and netlink link prober.
func Build(cfg Config, logger *slog.Logger) *System {
	runner := privexec.NewRunner(cfg.Exec, logger)
	editor := fileedit.NewEditor(cfg.Files, runner, logger)
	svc := services.NewController(runner, logger)
	host := hostname.NewManager(cfg.Hostname, editor, svc, runner, logger)
	lanMgr := lan.NewManager(cfg.LAN, editor, lan.NewLinkProber(), logger)
	return NewSystem(cfg, runner, svc, host, lanMgr, logger)
}

// SetHostname transitions the host to the candidate name. Success is
// exactly a nil error; failures identify the failed step.
func (s *System) SetHostname(ctx context.Context, candidate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostname.SetHostname(ctx, candidate)
}

// Hostname returns the current persistent hostname.
func (s *System) Hostname() string {
	return s.hostname.Hostname()
}

// DHCPServerEnabled reports whether the DHCP server is running.
func (s *System) DHCPServerEnabled(ctx context.Context) bool {
	return s.services.IsActive(ctx, s.cfg.DHCPService)
}

// SetDHCPServerEnabled starts-and-enables or stops-and-disables the DHCP
// server.
func (s *System) SetDHCPServerEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services.SetEnabled(ctx, s.cfg.DHCPService, enabled)
}

// MDNSEnabled reports whether the discovery service is running.
func (s *System) MDNSEnabled(ctx context.Context) bool {
	return s.services.IsActive(ctx, s.cfg.Hostname.MDNSService)
}

// SetMDNSEnabled starts-and-enables or stops-and-disables the discovery
// service.
func (s *System) SetMDNSEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services.SetEnabled(ctx, s.cfg.Hostname.MDNSService, enabled)
}

// SSHEnabled reports whether the SSH server is running.
func (s *System) SSHEnabled(ctx context.Context) bool {
	return s.services.IsActive(ctx, s.cfg.SSHService)
}

// SetSSHEnabled starts-and-enables or stops-and-disables the SSH server.
func (s *System) SetSSHEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services.SetEnabled(ctx, s.cfg.SSHService, enabled)
}

// LANSettings returns the configured LAN addressing, read fresh from disk.
func (s *System) LANSettings() (lan.Settings, error) {
	return s.lan.Settings()
}

// SetLANSettings validates and persists the LAN addressing configuration.
func (s *System) SetLANSettings(ctx context.Context, settings lan.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lan.Apply(ctx, settings)
}

// LANStatus probes the live state of the LAN interface.
func (s *System) LANStatus() (lan.LinkStatus, error) {
	return s.lan.Status()
}

// RestartGateway restarts the gateway application service.
func (s *System) RestartGateway(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services.Restart(ctx, s.cfg.GatewayService)
}

// RestartSystem triggers a reboot. Fire-and-forget: when the command is
// accepted this process may not survive to observe the result.
func (s *System) RestartSystem(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("system reboot requested")
	res := s.runner.Run(ctx, "reboot")
	if res.Succeeded {
		return nil
	}
	if res.LaunchErr != nil {
		return fmt.Errorf("gateway: reboot: %w", res.LaunchErr)
	}
	return fmt.Errorf("gateway: reboot exited non-zero: %s", res.Stdout)
}
