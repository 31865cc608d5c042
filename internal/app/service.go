// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/crewdeck/assigner/internal/adapters/repository"
	"github.com/crewdeck/assigner/internal/domain/matching"
	"github.com/crewdeck/assigner/internal/domain/model"
	"github.com/crewdeck/assigner/internal/domain/scheduling"
	"github.com/crewdeck/assigner/pkg/logger"
	"github.com/crewdeck/assigner/pkg/metrics"
)

// Service wires the matching and scheduling engines to the entity store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *repository.MemoryStore
	matcher   *matching.Engine
	scheduler *scheduling.Engine

	// Configuration
	matchingCfg   matching.Config
	schedulingCfg scheduling.Config
	fixturesPath  string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets a pre-populated entity store.
func WithStore(store *repository.MemoryStore) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMatchingConfig sets the matching engine defaults.
func WithMatchingConfig(cfg matching.Config) Option {
	return func(s *Service) {
		s.matchingCfg = cfg
	}
}

// WithSchedulingConfig sets the scheduling engine defaults.
func WithSchedulingConfig(cfg scheduling.Config) Option {
	return func(s *Service) {
		s.schedulingCfg = cfg
	}
}

// WithMaxResults caps how many slots schedule proposals return by default.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.schedulingCfg.MaxResults = n
		}
	}
}

// WithFixtures loads a YAML dataset into the store on Start.
func WithFixtures(path string) Option {
	return func(s *Service) {
		s.fixturesPath = path
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		matchingCfg:   matching.DefaultConfig(),
		schedulingCfg: scheduling.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the store and engines.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.fixturesPath != "" {
		if err := s.store.LoadFixtures(s.fixturesPath); err != nil {
			return err
		}
		s.logger.Info(ctx, "fixtures loaded", logger.String("path", s.fixturesPath))
	}

	s.matcher = matching.New(s.store, matching.WithConfig(s.matchingCfg))
	s.scheduler = scheduling.New(s.store, scheduling.WithConfig(s.schedulingCfg))

	tasks, people := s.store.Counts()
	metrics.UpdateStoreSizes(tasks, people)

	s.started = true
	s.logger.Info(ctx, "assignment service started",
		logger.Int("tasks", tasks),
		logger.Int("people", people),
	)
	return nil
}

// Stop marks the service stopped. The store has no resources to release.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "assignment service stopped")
}

// Store exposes the entity store for seeding.
func (s *Service) Store() *repository.MemoryStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Match ranks candidates for a task.
func (s *Service) Match(ctx context.Context, taskID string, opts ...matching.MatchOption) (*model.MatchResult, error) {
	start := time.Now()
	result, err := s.matcher.Match(ctx, taskID, opts...)
	metrics.RecordMatch(outcomeLabel(err), time.Since(start).Seconds())
	if err != nil {
		s.logger.Warn(ctx, "match failed",
			logger.String("taskID", taskID),
			logger.Error(err),
		)
		return nil, err
	}
	s.logger.Debug(ctx, "match computed",
		logger.String("taskID", taskID),
		logger.Int("candidates", len(result.Candidates)),
		logger.String("best", result.BestMatch.PersonName),
	)
	return result, nil
}

// Propose finds feasible schedule slots for a task.
func (s *Service) Propose(ctx context.Context, taskID string, opts ...scheduling.ProposeOption) (*model.ScheduleProposal, error) {
	start := time.Now()
	proposal, err := s.scheduler.Propose(ctx, taskID, opts...)
	metrics.RecordSchedule(outcomeLabel(err), time.Since(start).Seconds())
	if err != nil {
		s.logger.Warn(ctx, "propose failed",
			logger.String("taskID", taskID),
			logger.Error(err),
		)
		return nil, err
	}
	s.logger.Debug(ctx, "proposal computed",
		logger.String("taskID", taskID),
		logger.Int("slots", len(proposal.ProposedSlots)),
		logger.Int("conflicts", len(proposal.Conflicts)),
	)
	return proposal, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.store != nil {
		tasks, people := s.store.Counts()
		stats["tasks"] = tasks
		stats["people"] = people
		metrics.UpdateStoreSizes(tasks, people)
	}
	return stats
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, model.ErrTaskNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, model.ErrNoSuitableCandidate):
		return metrics.OutcomeNoCandidate
	case errors.Is(err, model.ErrNoScheduleAvailable):
		return metrics.OutcomeNoSchedule
	default:
		return metrics.OutcomeFlowError
	}
}
