// Package services manages named background services through the host's
// service manager.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arist0v/candle-gateway/internal/privexec"
)

// Controller abstracts service management for testability. Activity is
// probed live on every call and never cached.
type Controller interface {
	// IsActive returns true if the named service is currently running.
	IsActive(ctx context.Context, service string) bool

	// SetEnabled starts and enables, or stops and disables, the named
	// service. Both sub-steps must succeed; a service left started but not
	// enabled (or the reverse) is not rolled back.
	SetEnabled(ctx context.Context, service string, enabled bool) error

	// Restart restarts the named service.
	Restart(ctx context.Context, service string) error
}

// systemdController implements Controller by invoking systemctl through the
// privileged command runner.
type systemdController struct {
	runner privexec.Runner
	logger *slog.Logger
}

// NewController returns a Controller that drives the real systemctl binary.
func NewController(runner privexec.Runner, logger *slog.Logger) Controller {
	return &systemdController{
		runner: runner,
		logger: logger.With("component", "services"),
	}
}

func (c *systemdController) IsActive(ctx context.Context, service string) bool {
	res := c.runner.Run(ctx, "systemctl", "is-active", "--quiet", service)
	return res.Succeeded
}

func (c *systemdController) SetEnabled(ctx context.Context, service string, enabled bool) error {
	runVerb, bootVerb := "start", "enable"
	if !enabled {
		runVerb, bootVerb = "stop", "disable"
	}

	if err := c.run(ctx, runVerb, service); err != nil {
		return err
	}
	return c.run(ctx, bootVerb, service)
}

func (c *systemdController) Restart(ctx context.Context, service string) error {
	return c.run(ctx, "restart", service)
}

func (c *systemdController) run(ctx context.Context, verb, service string) error {
	res := c.runner.Run(ctx, "systemctl", verb, service)
	if res.Succeeded {
		c.logger.Debug("service command applied", "verb", verb, "service", service)
		return nil
	}
	if res.LaunchErr != nil {
		return fmt.Errorf("services: systemctl %s %s: %w", verb, service, res.LaunchErr)
	}
	return fmt.Errorf("services: systemctl %s %s exited non-zero: %s", verb, service, res.Stdout)
}
