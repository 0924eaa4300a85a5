// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion, default value application,
// and ensures all required configuration fields are present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config values can be written as "5s"
// or "500ms"; yaml.v3 has no native support for duration strings.
type Duration time.Duration

// UnmarshalYAML parses a duration string value.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	Checks   []Check  `yaml:"checks"`   // Shell checks to run
	Defaults Defaults `yaml:"defaults"` // Default settings for all checks
}

// Check represents a single named shell command. Each check can carry
// its own timeout, or it inherits Defaults.Timeout.
type Check struct {
	Name    string   `yaml:"name"`              // Check identifier (e.g., "disk", "dns")
	Command string   `yaml:"command"`           // Shell command (supports ${VAR} env expansion)
	Timeout Duration `yaml:"timeout,omitempty"` // Per-check timeout (optional)
}

// Defaults contains settings that apply to all checks unless overridden
// at the check level.
type Defaults struct {
	Timeout       Duration `yaml:"timeout"`        // Per-check execution timeout (e.g., "5s")
	WatchInterval Duration `yaml:"watch_interval"` // Refresh interval for the watch command (e.g., "10s")
	Parallel      int      `yaml:"parallel"`       // Max checks running at once (e.g., 4)
	History       int      `yaml:"history"`        // Results kept per check for session stats (e.g., 50)
}

// Validate validates the configuration and applies defaults where
// appropriate. It may emit warnings (to stderr) for suspicious values
// but does not fail on warnings.
func (c *Config) Validate() error {
	if c.Defaults.Timeout == 0 {
		return fmt.Errorf("defaults.timeout is required")
	}
	if c.Defaults.WatchInterval == 0 {
		return fmt.Errorf("defaults.watch_interval is required")
	}
	if c.Defaults.Parallel <= 0 {
		return fmt.Errorf("defaults.parallel is required and must be > 0")
	}
	if c.Defaults.History <= 0 {
		return fmt.Errorf("defaults.history is required and must be > 0")
	}
	if len(c.Checks) == 0 {
		return fmt.Errorf("at least one check is required")
	}

	warnTimeout := func(scope string, d Duration) {
		const low = Duration(100 * time.Millisecond)
		const high = Duration(2 * time.Minute)
		if d > 0 && d < low {
			fmt.Fprintf(os.Stderr, "Warning: %s timeout is very low (%s); checks may be cut off before producing output\n", scope, d)
		}
		if d > high {
			fmt.Fprintf(os.Stderr, "Warning: %s timeout is very high (%s); a hung check will block the refresh for a long time\n", scope, d)
		}
	}
	warnTimeout("defaults", c.Defaults.Timeout)

	seen := make(map[string]bool, len(c.Checks))
	for i := range c.Checks {
		if c.Checks[i].Name == "" {
			return fmt.Errorf("check %d: name is required", i)
		}
		if c.Checks[i].Command == "" {
			return fmt.Errorf("check %s: command is required", c.Checks[i].Name)
		}
		if seen[c.Checks[i].Name] {
			return fmt.Errorf("check %s: duplicate name", c.Checks[i].Name)
		}
		seen[c.Checks[i].Name] = true

		// Apply the default timeout to checks that don't specify one.
		if c.Checks[i].Timeout == 0 {
			c.Checks[i].Timeout = c.Defaults.Timeout
		}
		warnTimeout(fmt.Sprintf("check %s", c.Checks[i].Name), c.Checks[i].Timeout)
	}

	return nil
}

// Load reads and parses a YAML configuration file, expanding environment
// variables and validating all required fields. Validation is strict:
// all required fields must be present in the config file, with no
// hardcoded fallbacks.
//
// Commands can use ${VAR} syntax, expanded with os.ExpandEnv before
// parsing. Example: command: curl -fsS ${HEALTH_URL}
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv reads variables from a .env file in the current working
// directory, if one exists, so ${VAR} references in the config file can
// resolve. A missing .env file is not an error; system environment
// variables are used as-is.
func LoadEnv() {
	_ = godotenv.Load()
}
