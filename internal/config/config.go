package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Mode is the renderer's verbosity mode.
type Mode string

const (
	// ModeNormal prints one line per suite plus failed tests.
	ModeNormal Mode = "normal"
	// ModeFailuresOnly suppresses everything except failures.
	ModeFailuresOnly Mode = "failures"
	// ModeVerbose prints one line per test.
	ModeVerbose Mode = "verbose"
)

// ParseMode parses a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal", "":
		return ModeNormal, nil
	case "failures", "failures-only":
		return ModeFailuresOnly, nil
	case "verbose":
		return ModeVerbose, nil
	}
	return "", fmt.Errorf("unknown mode %q (want normal, failures or verbose)", s)
}

// Config holds all configuration for a run. It is fixed before the
// pipeline starts and never mutated afterwards.
type Config struct {
	// Mode is the requested verbosity mode.
	Mode Mode
	// ThresholdMs: durations above this are printed next to tests
	// and suites. Strictly greater-than; a duration exactly at the
	// threshold is not slow.
	ThresholdMs int
	// ASCII replaces the unicode check/cross marks with PASS/FAIL.
	ASCII bool
	// NoColor disables colored output.
	NoColor bool
	// FilterActive is set when the underlying test run was given a
	// test filter; it forces verbose mode so the few selected tests
	// are shown individually.
	FilterActive bool
	// Interactive opens the failure viewer TUI after a failing run.
	Interactive bool
	// Progress shows a progress bar on stderr (failures-only mode).
	Progress bool
	// PatternsFile optionally overrides the classifier patterns.
	PatternsFile string
	// JSONOut optionally writes the finished run as a JSON report.
	JSONOut string
}

// New creates a Config with defaults applied.
func New() *Config {
	return &Config{
		Mode:        DefaultMode,
		ThresholdMs: DefaultThresholdMs,
	}
}

// ApplyEnv overlays environment defaults (a .env file is honored if
// present). Flags are applied afterwards and win over these.
func (c *Config) ApplyEnv() error {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("GTPP_MODE"); v != "" {
		mode, err := ParseMode(v)
		if err != nil {
			return fmt.Errorf("GTPP_MODE: %w", err)
		}
		c.Mode = mode
	}
	if v := os.Getenv("GTPP_THRESHOLD_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("GTPP_THRESHOLD_MS: invalid value %q", v)
		}
		c.ThresholdMs = n
	}
	if v := os.Getenv("GTPP_ASCII"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GTPP_ASCII: invalid value %q", v)
		}
		c.ASCII = b
	}
	if v := os.Getenv("GTPP_PATTERNS"); v != "" {
		c.PatternsFile = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.NoColor = true
	}
	return nil
}

// EffectiveMode resolves the mode actually used for rendering: an
// active test filter forces verbose regardless of the requested mode.
func (c *Config) EffectiveMode() Mode {
	if c.FilterActive {
		return ModeVerbose
	}
	return c.Mode
}
