package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ASSIGNER_CONFIG is set
//  3. env (prefix ASSIGNER_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ASSIGNER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ASSIGNER_ADDR, ASSIGNER_SKILL_WEIGHT, ...
	// Map env keys like ASSIGNER_SKILL_WEIGHT -> skill_weight (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ASSIGNER_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "assigner_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.SkillWeight < 0 || cfg.CapacityWeight < 0:
		return nil, fmt.Errorf("%w: weights must be non-negative", ErrInvalidConfig)
	case cfg.MissingSkillPenalty < 0 || cfg.MissingSkillPenalty > 1:
		return nil, fmt.Errorf("%w: missing_skill_penalty must be in [0,1]", ErrInvalidConfig)
	case cfg.MaxCandidates < 1:
		return nil, fmt.Errorf("%w: max_candidates must be positive", ErrInvalidConfig)
	case cfg.MaxResults < 1 || cfg.WindowDays < 1:
		return nil, fmt.Errorf("%w: max_results and window_days must be positive", ErrInvalidConfig)
	case cfg.MaxMatchLimit < 1:
		return nil, fmt.Errorf("%w: max_match_limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
