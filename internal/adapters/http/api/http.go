// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crewdeck/assigner/internal/domain/matching"
	"github.com/crewdeck/assigner/internal/domain/model"
	"github.com/crewdeck/assigner/internal/domain/scheduling"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Match(ctx context.Context, taskID string, opts ...matching.MatchOption) (*model.MatchResult, error)
	Propose(ctx context.Context, taskID string, opts ...scheduling.ProposeOption) (*model.ScheduleProposal, error)
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	matchHandler    *MatchHandler
	scheduleHandler *ScheduleHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler

	maxMatchLimit int
}

// defaultMaxMatchLimit caps the per-request limit parameter when no cap is
// configured.
const defaultMaxMatchLimit = 100

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxMatchLimit caps the limit query parameter on match requests.
func WithMaxMatchLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxMatchLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		scheduleHandler: NewScheduleHandler(deps),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		maxMatchLimit:   defaultMaxMatchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.matchHandler = NewMatchHandler(deps, s.maxMatchLimit)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /tasks/{id}/match", RequestIDMiddleware(MetricsMiddleware(s.matchHandler.HandleMatch, "match")))
	mux.HandleFunc("GET /tasks/{id}/schedule", RequestIDMiddleware(MetricsMiddleware(s.scheduleHandler.HandleSchedule, "schedule")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeEngineError maps the engine error taxonomy onto HTTP statuses:
// not-found to 404, no-viable-outcome to 409, infrastructure to 502.
func writeEngineError(w http.ResponseWriter, err error) {
	var flowErr *model.FlowError
	switch {
	case errors.Is(err, model.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "task_not_found", err)
	case errors.Is(err, model.ErrNoSuitableCandidate):
		writeError(w, http.StatusConflict, "no_suitable_candidate", err)
	case errors.Is(err, model.ErrNoScheduleAvailable):
		writeError(w, http.StatusConflict, "no_schedule_available", err)
	case errors.As(err, &flowErr):
		writeError(w, http.StatusBadGateway, "repository_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
