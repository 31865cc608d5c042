package matching

// Default scoring configuration constants.
const (
	defaultSkillWeight         = 0.7
	defaultCapacityWeight      = 0.3
	defaultMaxCandidates       = 10
	defaultMissingSkillPenalty = 0.1
)

// Config holds the scoring parameters injected at engine construction.
type Config struct {
	// SkillWeight is the overall-score weight of the skill score.
	SkillWeight float64
	// CapacityWeight is the overall-score weight of the capacity score.
	CapacityWeight float64
	// MaxCandidates caps how many candidates a result returns.
	MaxCandidates int
	// MissingSkillPenalty is the score assigned to a required skill the
	// candidate does not hold.
	MissingSkillPenalty float64
}

// DefaultConfig returns the standard scoring parameters.
func DefaultConfig() Config {
	return Config{
		SkillWeight:         defaultSkillWeight,
		CapacityWeight:      defaultCapacityWeight,
		MaxCandidates:       defaultMaxCandidates,
		MissingSkillPenalty: defaultMissingSkillPenalty,
	}
}

// sanitized fills zero or invalid fields from the defaults so a partially
// populated Config cannot disable scoring.
func (c Config) sanitized() Config {
	d := DefaultConfig()
	if c.SkillWeight < 0 {
		c.SkillWeight = d.SkillWeight
	}
	if c.CapacityWeight < 0 {
		c.CapacityWeight = d.CapacityWeight
	}
	if c.SkillWeight == 0 && c.CapacityWeight == 0 {
		c.SkillWeight = d.SkillWeight
		c.CapacityWeight = d.CapacityWeight
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = d.MaxCandidates
	}
	if c.MissingSkillPenalty < 0 || c.MissingSkillPenalty > 1 {
		c.MissingSkillPenalty = d.MissingSkillPenalty
	}
	return c
}

// MatchOption overrides one configuration field for a single Match call.
type MatchOption func(*Config)

// WithLimit overrides the maximum number of returned candidates.
func WithLimit(n int) MatchOption {
	return func(c *Config) {
		if n > 0 {
			c.MaxCandidates = n
		}
	}
}

// WithSkillWeight overrides the skill weight for this call.
func WithSkillWeight(w float64) MatchOption {
	return func(c *Config) {
		if w >= 0 {
			c.SkillWeight = w
		}
	}
}

// WithCapacityWeight overrides the capacity weight for this call.
func WithCapacityWeight(w float64) MatchOption {
	return func(c *Config) {
		if w >= 0 {
			c.CapacityWeight = w
		}
	}
}
