// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers an optional YAML file and env vars over the defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SkillWeight and CapacityWeight are the default overall-score weights.
	SkillWeight    float64 `koanf:"skill_weight"`
	CapacityWeight float64 `koanf:"capacity_weight"`

	// MaxCandidates caps how many candidates a match returns by default.
	MaxCandidates int `koanf:"max_candidates"`

	// MissingSkillPenalty scores a required skill a candidate lacks.
	MissingSkillPenalty float64 `koanf:"missing_skill_penalty"`

	// MaxResults caps how many slots a schedule proposal returns by default.
	MaxResults int `koanf:"max_results"`

	// WindowDays sizes the schedule search window when neither a requested
	// end date nor a task due date bounds it.
	WindowDays int `koanf:"window_days"`

	// MaxMatchLimit caps the per-request limit parameter.
	MaxMatchLimit int `koanf:"max_match_limit"`

	// Fixtures points at an optional YAML dataset loaded on start.
	Fixtures string `koanf:"fixtures"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8080",
		SkillWeight:         0.7,
		CapacityWeight:      0.3,
		MaxCandidates:       10,
		MissingSkillPenalty: 0.1,
		MaxResults:          5,
		WindowDays:          7,
		MaxMatchLimit:       100,
	}
}
