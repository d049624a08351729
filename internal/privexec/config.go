// Package privexec runs external commands with elevated privilege and
// reports their outcome without treating a non-zero exit as a fault.
package privexec

import (
	"errors"
	"time"
)

// DefaultCommandTimeout is the default maximum duration for a single command.
const DefaultCommandTimeout = 30 * time.Second

// DefaultMaxOutputBytes is the default maximum captured output size (64 KiB).
const DefaultMaxOutputBytes = 64 << 10

// Config holds the configuration for privileged command execution.
type Config struct {
	// SudoPath is the path to the elevation binary prepended to every
	// command. Empty means the process already runs with sufficient
	// privilege and commands are invoked directly.
	// Default: "" (run directly).
	SudoPath string `yaml:"sudo_path"`

	// CommandTimeout is the maximum duration for a single command. A
	// command that exceeds it is killed and reported as unsuccessful.
	// Default: 30s.
	CommandTimeout time.Duration `yaml:"command_timeout"`

	// MaxOutputBytes is the maximum captured stdout size per command.
	// Default: 64 KiB.
	MaxOutputBytes int64 `yaml:"max_output_bytes"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.CommandTimeout == 0 {
		c.CommandTimeout = DefaultCommandTimeout
	}
	if c.MaxOutputBytes == 0 {
		c.MaxOutputBytes = DefaultMaxOutputBytes
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.CommandTimeout < time.Second {
		return errors.New("privexec: config: CommandTimeout must be at least 1s")
	}
	if c.MaxOutputBytes < 1024 {
		return errors.New("privexec: config: MaxOutputBytes must be at least 1024")
	}
	return nil
}
