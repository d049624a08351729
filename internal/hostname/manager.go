package hostname

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/arist0v/candle-gateway/internal/fileedit"
	"github.com/arist0v/candle-gateway/internal/privexec"
	"github.com/arist0v/candle-gateway/internal/services"
)

// maxHostnameLength is the RFC 1123 label length bound.
const maxHostnameLength = 63

// labelPattern is the RFC 1123 label grammar applied after lowercasing.
var labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ErrInvalidHostname reports a candidate that fails the label grammar or
// length bound. No mutation is attempted for such candidates.
var ErrInvalidHostname = errors.New("hostname: invalid hostname")

// ErrRollbackFailed reports that undoing an already-applied step failed,
// leaving the hostname file and the live hostname possibly divergent. No
// automated remediation is attempted beyond surfacing the failure.
var ErrRollbackFailed = errors.New("hostname: rollback failed, host state may be inconsistent")

// Step identifies one phase of a hostname transition.
type Step int

const (
	// StepValidate rejects malformed candidates before any side effect.
	StepValidate Step = iota
	// StepWriteHostnameFile rewrites the single line of the hostname file.
	StepWriteHostnameFile
	// StepSetLiveHostname applies the new name to the running kernel.
	StepSetLiveHostname
	// StepRestartMDNS restarts the discovery service so it advertises the
	// new name.
	StepRestartMDNS
	// StepUpdateHostsFile rewrites the loopback alias line in the hosts
	// file. This step is never rolled back on failure.
	StepUpdateHostsFile
)

// String returns the step name for logs and error messages.
func (s Step) String() string {
	switch s {
	case StepValidate:
		return "validate"
	case StepWriteHostnameFile:
		return "write-hostname-file"
	case StepSetLiveHostname:
		return "set-live-hostname"
	case StepRestartMDNS:
		return "restart-mdns"
	case StepUpdateHostsFile:
		return "update-hosts-file"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// StepError reports which transition step failed. Callers that only care
// about overall success can treat any non-nil error as failure; callers that
// need the failed step can unwrap to a *StepError.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("hostname: %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// transitionStep pairs a forward action with its inverse. Steps are applied
// strictly in order; on failure the inverses of previously applied steps run
// in reverse order, except when the failing step opts out of unwinding.
type transitionStep struct {
	step            Step
	apply           func() error
	undo            func() error // nil when the step has no inverse
	unwindOnFailure bool
}

// Manager orchestrates hostname transitions. A transition mutates the
// hostname file, the live kernel hostname, and the hosts-file loopback
// alias, keeping the first two mutually consistent: at every observable
// point they are either both the original value or both the new one, unless
// rollback itself fails.
type Manager struct {
	cfg      Config
	editor   fileedit.Editor
	services services.Controller
	runner   privexec.Runner
	logger   *slog.Logger
}

// NewManager creates a Manager with the given collaborators.
func NewManager(cfg Config, editor fileedit.Editor, svc services.Controller, runner privexec.Runner, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		editor:   editor,
		services: svc,
		runner:   runner,
		logger:   logger.With("component", "hostname"),
	}
}

// Hostname returns the current persistent hostname: the trimmed content of
// the hostname file, falling back to the kernel value when the file cannot
// be read.
func (m *Manager) Hostname() string {
	if raw, err := m.editor.ReadText(m.cfg.HostnameFile); err == nil {
		return strings.TrimSpace(raw)
	}
	name, _ := os.Hostname()
	return name
}

// SetHostname transitions the host to the candidate name. The candidate is
// lowercased and validated against the RFC 1123 label grammar before any
// side effect. Errors identify the failed step via *StepError; a rollback
// failure is joined on as ErrRollbackFailed.
func (m *Manager) SetHostname(ctx context.Context, candidate string) error {
	name := strings.ToLower(strings.TrimSpace(candidate))
	if len(name) > maxHostnameLength || !labelPattern.MatchString(name) {
		return &StepError{Step: StepValidate, Err: fmt.Errorf("%w: %q", ErrInvalidHostname, candidate)}
	}

	original := m.snapshot()
	m.logger.Info("hostname transition started", "from", original, "to", name)

	steps := []transitionStep{
		{
			step:            StepWriteHostnameFile,
			apply:           func() error { return m.writeHostnameFile(ctx, original, name) },
			undo:            func() error { return m.writeHostnameFile(ctx, name, original) },
			unwindOnFailure: true,
		},
		{
			step:            StepSetLiveHostname,
			apply:           func() error { return m.setLiveHostname(ctx, name) },
			undo:            func() error { return m.resetLiveHostname(ctx, original) },
			unwindOnFailure: true,
		},
		{
			step:            StepRestartMDNS,
			apply:           func() error { return m.services.Restart(ctx, m.cfg.MDNSService) },
			unwindOnFailure: true,
		},
		{
			// The hosts line is the last location updated and the only one
			// left as-is when its own update fails; the alias may lag one
			// transition behind the hostname file and live value.
			step:            StepUpdateHostsFile,
			apply:           func() error { return m.updateHostsFile(ctx, original, name) },
			unwindOnFailure: false,
		},
	}

	for i, st := range steps {
		err := st.apply()
		if err == nil {
			continue
		}

		stepErr := &StepError{Step: st.step, Err: err}
		if !st.unwindOnFailure {
			m.logger.Error("hostname transition failed, no rollback for this step",
				"step", st.step.String(), "error", err)
			return stepErr
		}

		if rbErr := m.unwind(steps[:i]); rbErr != nil {
			m.logger.Error("hostname rollback failed",
				"step", st.step.String(), "error", err, "rollback_error", rbErr)
			return errors.Join(stepErr, fmt.Errorf("%w: %w", ErrRollbackFailed, rbErr))
		}

		m.logger.Warn("hostname transition rolled back",
			"step", st.step.String(), "error", err)
		return stepErr
	}

	m.logger.Info("hostname transition complete", "hostname", name)
	return nil
}

// snapshot captures the hostname-file content before the transition begins.
// An unreadable file yields an empty best-effort rollback target.
func (m *Manager) snapshot() string {
	raw, err := m.editor.ReadText(m.cfg.HostnameFile)
	if err != nil {
		m.logger.Warn("hostname file unreadable, rollback target is empty", "error", err)
		return ""
	}
	return strings.TrimSpace(raw)
}

// unwind runs the inverses of the applied steps in reverse order and
// collects every failure.
func (m *Manager) unwind(applied []transitionStep) error {
	var errs []error
	for i := len(applied) - 1; i >= 0; i-- {
		if applied[i].undo == nil {
			continue
		}
		if err := applied[i].undo(); err != nil {
			errs = append(errs, fmt.Errorf("undo %s: %w", applied[i].step, err))
		}
	}
	return errors.Join(errs...)
}

// writeHostnameFile substitutes the single line of the hostname file,
// replacing prior with next. An empty prior (unreadable snapshot) matches
// whatever line is present.
func (m *Manager) writeHostnameFile(ctx context.Context, prior, next string) error {
	pattern := "^.*$"
	if prior != "" {
		pattern = "^" + escapePattern(prior) + "$"
	}
	return m.editor.SubstituteLinePrivileged(ctx, m.cfg.HostnameFile, pattern, next)
}

func (m *Manager) setLiveHostname(ctx context.Context, name string) error {
	res := m.runner.Run(ctx, "hostnamectl", "set-hostname", name)
	if res.Succeeded {
		return nil
	}
	if res.LaunchErr != nil {
		return fmt.Errorf("hostnamectl set-hostname: %w", res.LaunchErr)
	}
	return fmt.Errorf("hostnamectl set-hostname exited non-zero: %s", res.Stdout)
}

// resetLiveHostname is the inverse of setLiveHostname. With an empty
// snapshot there is no value to restore; the live name is left as applied.
func (m *Manager) resetLiveHostname(ctx context.Context, original string) error {
	if original == "" {
		m.logger.Warn("no snapshot to restore live hostname from")
		return nil
	}
	return m.setLiveHostname(ctx, original)
}

// updateHostsFile rewrites the loopback alias line, replacing the original
// name after the alias address with the new one. Only lines anchored at the
// alias are touched so unrelated hosts-file content is never corrupted.
func (m *Manager) updateHostsFile(ctx context.Context, original, name string) error {
	alias := escapePattern(m.cfg.LoopbackAlias)
	pattern := "^" + alias + "[[:space:]].*$"
	if original != "" {
		pattern = "^" + alias + "[[:space:]][[:space:]]*" + escapePattern(original) + "$"
	}
	replacement := m.cfg.LoopbackAlias + "\t" + name
	return m.editor.SubstituteLinePrivileged(ctx, m.cfg.HostsFile, pattern, replacement)
}

// escapePattern escapes the characters that are special in both POSIX basic
// regular expressions and Go regexp, keeping substitution patterns valid for
// sed and replayable by in-memory fakes.
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '.', '*', '[', ']', '^', '$':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
