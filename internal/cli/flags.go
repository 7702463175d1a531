package cli

import (
	"gtpp/internal/config"
)

// Flags holds command-line flags shared by the run and pipe
// commands.
type Flags struct {
	Mode        string
	ThresholdMs int
	ASCII       bool
	NoColor     bool
	Interactive bool
	Progress    bool
	Patterns    string
	JSONOut     string
}

// Apply validates the flags and overlays them onto the config.
func (f *Flags) Apply(cfg *config.Config) error {
	if f.Mode != "" {
		mode, err := config.ParseMode(f.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if f.ThresholdMs >= 0 {
		cfg.ThresholdMs = f.ThresholdMs
	}
	if f.ASCII {
		cfg.ASCII = true
	}
	if f.NoColor {
		cfg.NoColor = true
	}
	if f.Interactive {
		cfg.Interactive = true
	}
	if f.Progress {
		cfg.Progress = true
	}
	if f.Patterns != "" {
		cfg.PatternsFile = f.Patterns
	}
	if f.JSONOut != "" {
		cfg.JSONOut = f.JSONOut
	}
	return nil
}
