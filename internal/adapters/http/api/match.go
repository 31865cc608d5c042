package api

import (
	"net/http"
	"strconv"

	"github.com/crewdeck/assigner/internal/domain/matching"
)

// MatchHandler handles candidate ranking requests.
type MatchHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewMatchHandler creates a new match handler. maxLimit caps the limit
// query parameter.
func NewMatchHandler(deps Dependencies, maxLimit int) *MatchHandler {
	return &MatchHandler{deps: deps, maxLimit: maxLimit}
}

// HandleMatch handles GET /tasks/{id}/match?limit=&skill_weight=&capacity_weight=.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingTaskID)
		return
	}

	var opts []matching.MatchOption
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidLimit)
			return
		}
		if h.maxLimit > 0 && n > h.maxLimit {
			n = h.maxLimit
		}
		opts = append(opts, matching.WithLimit(n))
	}
	if raw := q.Get("skill_weight"); raw != "" {
		wgt, err := strconv.ParseFloat(raw, 64)
		if err != nil || wgt < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidWeight)
			return
		}
		opts = append(opts, matching.WithSkillWeight(wgt))
	}
	if raw := q.Get("capacity_weight"); raw != "" {
		wgt, err := strconv.ParseFloat(raw, 64)
		if err != nil || wgt < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidWeight)
			return
		}
		opts = append(opts, matching.WithCapacityWeight(wgt))
	}

	result, err := h.deps.Match(r.Context(), taskID, opts...)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
