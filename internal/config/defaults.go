package config

const (
	// DefaultMode is the default verbosity mode
	DefaultMode = ModeNormal
	// DefaultThresholdMs is the duration above which times are shown
	DefaultThresholdMs = 50
)
