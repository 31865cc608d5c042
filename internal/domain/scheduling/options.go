package scheduling

import "time"

// Default search window parameters.
const (
	defaultWindowDays = 7
	defaultMaxResults = 5
)

// Config holds the engine-level search defaults. Per-call options still
// override them for a single Propose.
type Config struct {
	// MaxResults caps how many slots a proposal returns.
	MaxResults int
	// WindowDays sizes the search window when neither an end date nor a
	// task due date bounds it.
	WindowDays int
}

// DefaultConfig returns the standard search defaults.
func DefaultConfig() Config {
	return Config{
		MaxResults: defaultMaxResults,
		WindowDays: defaultWindowDays,
	}
}

// sanitized returns a copy with non-positive fields reset to defaults.
func (c Config) sanitized() Config {
	if c.MaxResults < 1 {
		c.MaxResults = defaultMaxResults
	}
	if c.WindowDays < 1 {
		c.WindowDays = defaultWindowDays
	}
	return c
}

// callOptions holds the per-call search window.
type callOptions struct {
	startDate  time.Time
	endDate    time.Time
	maxResults int
}

// ProposeOption overrides one search parameter for a single Propose call.
type ProposeOption func(*callOptions)

// WithStartDate sets the start of the search window. Defaults to now.
func WithStartDate(t time.Time) ProposeOption {
	return func(o *callOptions) {
		o.startDate = t.UTC()
	}
}

// WithEndDate sets the end of the search window. Defaults to the task due
// date, else start plus seven days. The task due date still caps it.
func WithEndDate(t time.Time) ProposeOption {
	return func(o *callOptions) {
		o.endDate = t.UTC()
	}
}

// WithMaxResults caps how many slots the proposal returns.
func WithMaxResults(n int) ProposeOption {
	return func(o *callOptions) {
		if n > 0 {
			o.maxResults = n
		}
	}
}
