// Package fileedit reads and mutates small host configuration files. Writes
// go through a private staging file and a privileged move so the destination
// never contains partial content; single-line edits go through a privileged
// in-place substitution.
package fileedit

import "errors"

// DefaultStagingDir is the default directory for staging files before the
// privileged move into place.
const DefaultStagingDir = "/tmp"

// Config holds the configuration for privileged file editing.
type Config struct {
	// StagingDir is the directory where new file content is staged before
	// being moved into place. Default: /tmp.
	StagingDir string `yaml:"staging_dir"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.StagingDir == "" {
		c.StagingDir = DefaultStagingDir
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.StagingDir == "" {
		return errors.New("fileedit: config: StagingDir is required")
	}
	return nil
}
