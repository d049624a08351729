package privexec

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"
)

// waitDelayAfterKill is the grace period for a process to exit after context
// cancellation before it is forcibly killed. This gives child processes time
// to handle SIGTERM and flush buffers.
const waitDelayAfterKill = 500 * time.Millisecond

// Result is the outcome of one command execution. A non-zero exit is a
// normal, reportable outcome: Succeeded is false and LaunchErr is nil.
// LaunchErr is set only when the child process could not be started at all
// (binary missing, elevation denied) or was killed before exiting cleanly.
type Result struct {
	Succeeded bool
	Stdout    string
	LaunchErr error
}

// Runner executes a single external command with elevated privilege,
// blocking until the child process exits or the configured timeout fires.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// execRunner implements Runner using os/exec, optionally prefixing every
// command with the configured elevation binary.
type execRunner struct {
	cfg    Config
	logger *slog.Logger
}

// NewRunner creates a Runner with the given configuration.
func NewRunner(cfg Config, logger *slog.Logger) Runner {
	return &execRunner{
		cfg:    cfg,
		logger: logger.With("component", "privexec"),
	}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) Result {
	runCtx, cancel := context.WithTimeout(ctx, r.cfg.CommandTimeout)
	defer cancel()

	argv := append([]string{name}, args...)
	if r.cfg.SudoPath != "" {
		argv = append([]string{r.cfg.SudoPath}, argv...)
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.WaitDelay = waitDelayAfterKill

	stdout := newLimitedWriter(r.cfg.MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stdout

	runErr := cmd.Run()
	out := stdout.String()

	if runErr == nil {
		return Result{Succeeded: true, Stdout: out}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && runCtx.Err() == nil {
		r.logger.Debug("command exited non-zero",
			"command", name,
			"exit_code", exitErr.ExitCode(),
		)
		return Result{Stdout: out}
	}

	// The child could not be launched, or it was killed by the timeout.
	r.logger.Warn("command launch failed",
		"command", name,
		"error", runErr,
	)
	return Result{Stdout: out, LaunchErr: runErr}
}

// limitedWriter is an io.Writer that discards bytes beyond a maximum limit,
// preventing unbounded memory allocation during command execution.
type limitedWriter struct {
	buf []byte
	max int64
}

func newLimitedWriter(max int64) *limitedWriter {
	return &limitedWriter{max: max}
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.max - int64(len(w.buf))
	if remaining > 0 {
		n := int64(len(p))
		if n > remaining {
			n = remaining
		}
		w.buf = append(w.buf, p[:n]...)
	}
	// Always report all bytes as written so the command doesn't stall.
	return len(p), nil
}

func (w *limitedWriter) String() string {
	return string(w.buf)
}
