package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crewdeck/assigner/internal/domain/scheduling"
)

// ScheduleHandler handles slot proposal requests.
type ScheduleHandler struct {
	deps Dependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps Dependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

// HandleSchedule handles GET /tasks/{id}/schedule?start=&end=&max_results=.
// Dates are RFC3339.
func (h *ScheduleHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingTaskID)
		return
	}

	var opts []scheduling.ProposeOption
	q := r.URL.Query()
	if raw := q.Get("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidDate)
			return
		}
		opts = append(opts, scheduling.WithStartDate(t))
	}
	if raw := q.Get("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidDate)
			return
		}
		opts = append(opts, scheduling.WithEndDate(t))
	}
	if raw := q.Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidLimit)
			return
		}
		opts = append(opts, scheduling.WithMaxResults(n))
	}

	proposal, err := h.deps.Propose(r.Context(), taskID, opts...)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}
