package fileedit

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/arist0v/candle-gateway/internal/privexec"
)

// Editor abstracts host configuration file access for testability.
type Editor interface {
	// ReadText returns the file content verbatim. A missing file surfaces
	// as an error matching errors.Is(err, fs.ErrNotExist); some callers
	// treat that as a legitimate state rather than a fault.
	ReadText(path string) (string, error)

	// WriteTextPrivileged replaces the file at path with content. The
	// content is staged in a private location and moved into place by an
	// elevated move command, so readers never observe a partial file.
	WriteTextPrivileged(ctx context.Context, path, content string) error

	// SubstituteLinePrivileged performs an in-place single-line regex
	// substitution on the file at path via an elevated sed invocation.
	// Patterns must stay within the common subset of POSIX BRE and Go
	// regexp syntax.
	SubstituteLinePrivileged(ctx context.Context, path, pattern, replacement string) error
}

// fileEditor implements Editor using the privileged command runner for
// every mutation. Reads are plain file reads.
type fileEditor struct {
	cfg    Config
	runner privexec.Runner
	logger *slog.Logger
}

// NewEditor creates an Editor backed by the given runner.
func NewEditor(cfg Config, runner privexec.Runner, logger *slog.Logger) Editor {
	return &fileEditor{
		cfg:    cfg,
		runner: runner,
		logger: logger.With("component", "fileedit"),
	}
}

func (e *fileEditor) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fileedit: read %s: %w", path, err)
	}
	return string(data), nil
}

func (e *fileEditor) WriteTextPrivileged(ctx context.Context, path, content string) error {
	staged, err := os.CreateTemp(e.cfg.StagingDir, "fileedit-*")
	if err != nil {
		return fmt.Errorf("fileedit: create staging file: %w", err)
	}
	stagedPath := staged.Name()

	if _, err := staged.WriteString(content); err != nil {
		staged.Close()
		os.Remove(stagedPath)
		return fmt.Errorf("fileedit: write staging file: %w", err)
	}
	if err := staged.Close(); err != nil {
		os.Remove(stagedPath)
		return fmt.Errorf("fileedit: close staging file: %w", err)
	}

	res := e.runner.Run(ctx, "mv", stagedPath, path)
	if !res.Succeeded {
		os.Remove(stagedPath)
		if res.LaunchErr != nil {
			return fmt.Errorf("fileedit: move %s into place: %w", path, res.LaunchErr)
		}
		return fmt.Errorf("fileedit: move %s into place: %s", path, res.Stdout)
	}

	e.logger.Debug("file replaced", "path", path)
	return nil
}

func (e *fileEditor) SubstituteLinePrivileged(ctx context.Context, path, pattern, replacement string) error {
	expr := fmt.Sprintf("s|%s|%s|", pattern, replacement)
	res := e.runner.Run(ctx, "sed", "-i", expr, path)
	if !res.Succeeded {
		if res.LaunchErr != nil {
			return fmt.Errorf("fileedit: substitute in %s: %w", path, res.LaunchErr)
		}
		return fmt.Errorf("fileedit: substitute in %s: %s", path, res.Stdout)
	}

	e.logger.Debug("line substituted", "path", path)
	return nil
}
