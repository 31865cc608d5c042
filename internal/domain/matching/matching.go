// Package matching implements the candidate ranking engine: it scores a
// task's candidate pool on skill fit and remaining capacity and returns a
// ranked result.
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crewdeck/assigner/internal/domain/level"
	"github.com/crewdeck/assigner/internal/domain/model"
)

// Years-of-experience bonus parameters.
const (
	yearsBonusRate = 0.02
	yearsBonusCap  = 0.2
)

const flowName = "matching"

// CandidateFilter is a best-effort pre-filter hint passed to the repository.
// The engine never assumes it was applied.
type CandidateFilter struct {
	// HasAnySkills keeps candidates holding at least one of these skill ids.
	HasAnySkills []string
	// MinAvailableHours keeps candidates with at least this many free hours.
	// Zero means no floor.
	MinAvailableHours float64
}

// Repository provides the task and candidate pool for one match run.
type Repository interface {
	// GetTask returns the task with its required skills, or (nil, nil) when
	// the task does not exist.
	GetTask(ctx context.Context, taskID string) (*model.Task, error)
	// ListCandidates returns the candidate pool. The filter is an
	// optimization hint only.
	ListCandidates(ctx context.Context, filter *CandidateFilter) ([]model.Person, error)
}

// Engine scores and ranks candidates for a task. It holds no mutable state
// between calls.
type Engine struct {
	repo Repository
	cfg  Config
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfig replaces the default scoring configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg.sanitized()
	}
}

// New creates a matching engine backed by repo.
func New(repo Repository, opts ...Option) *Engine {
	e := &Engine{
		repo: repo,
		cfg:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match ranks candidates for taskID. Per-call options override the engine
// configuration for this invocation only.
func (e *Engine) Match(ctx context.Context, taskID string, opts ...MatchOption) (*model.MatchResult, error) {
	cfg := e.cfg
	for _, opt := range opts {
		opt(&cfg)
	}

	task, err := e.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, model.NewFlowError(flowName, "getTask", err)
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrTaskNotFound)
	}

	// Non-positive effort means capacity cannot discriminate; scoreCandidate
	// treats it as a full capacity score and the hint carries no floor.
	effortHours := task.EffortHours

	filter := &CandidateFilter{}
	if effortHours > 0 {
		filter.MinAvailableHours = effortHours
	}
	for _, r := range task.RequiredSkills {
		filter.HasAnySkills = append(filter.HasAnySkills, r.SkillID)
	}

	pool, err := e.repo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, model.NewFlowError(flowName, "listCandidates", err)
	}

	scored := make([]model.MatchCandidate, 0, len(pool))
	for _, person := range pool {
		scored = append(scored, e.scoreCandidate(person, task.RequiredSkills, effortHours, cfg))
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNoSuitableCandidate)
	}

	// Ranking is re-derived here regardless of pool order: score desc,
	// name asc on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].OverallScore == scored[j].OverallScore {
			return strings.Compare(scored[i].PersonName, scored[j].PersonName) < 0
		}
		return scored[i].OverallScore > scored[j].OverallScore
	})

	if cfg.MaxCandidates > 0 && len(scored) > cfg.MaxCandidates {
		scored = scored[:cfg.MaxCandidates]
	}
	best := scored[0]

	return &model.MatchResult{
		TaskID:        taskID,
		Candidates:    scored,
		BestMatch:     &best,
		Justification: justification(best),
		ComputedAt:    time.Now().UTC(),
	}, nil
}

func (e *Engine) scoreCandidate(person model.Person, required []model.RequiredSkill, effortHours float64, cfg Config) model.MatchCandidate {
	matches := make([]model.SkillMatch, 0, len(required))
	var weightSum, scoreSum float64
	for _, req := range required {
		m := scoreSkill(req, person.Skills, cfg.MissingSkillPenalty)
		matches = append(matches, m)
		w := req.Priority.Weight()
		weightSum += w
		scoreSum += m.Score * w
	}

	skillScore := 0.0
	if len(required) > 0 && weightSum > 0 {
		skillScore = scoreSum / weightSum
	}

	capacityScore := 1.0
	if effortHours > 0 {
		capacityScore = clamp(person.AvailableHours()/effortHours, 0, 1)
	}

	return model.MatchCandidate{
		PersonID:      person.ID,
		PersonName:    person.Name,
		SkillMatches:  matches,
		SkillScore:    skillScore,
		CapacityScore: capacityScore,
		OverallScore:  cfg.SkillWeight*skillScore + cfg.CapacityWeight*capacityScore,
	}
}

// scoreSkill scores one required skill against the held skills. A missing
// skill scores the configured penalty rather than zero so rankings stay
// informative.
func scoreSkill(req model.RequiredSkill, held []model.PersonSkill, missingPenalty float64) model.SkillMatch {
	m := model.SkillMatch{
		SkillID:       req.SkillID,
		SkillName:     req.SkillName,
		RequiredLevel: req.RequiredLevel,
		Priority:      req.Priority,
	}

	var found *model.PersonSkill
	for i := range held {
		if held[i].SkillID == req.SkillID {
			found = &held[i]
			break
		}
	}
	if found == nil {
		m.Score = missingPenalty
		return m
	}

	requiredRank := level.Rank(req.RequiredLevel)
	personRank := level.Rank(found.Level)

	levelRatio := clamp(float64(personRank)/float64(requiredRank), 0, 1)
	yearsBonus := clamp(found.Years*yearsBonusRate, 0, yearsBonusCap)

	m.PersonLevel = found.Level
	m.Score = clamp(levelRatio+yearsBonus, 0, 1)
	return m
}

func justification(best model.MatchCandidate) string {
	return fmt.Sprintf("Chose %s based on skill fit (%.2f) and capacity (%.2f).",
		best.PersonName, best.SkillScore, best.CapacityScore)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
