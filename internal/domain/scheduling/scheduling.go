// Package scheduling implements the slot search engine: it finds the
// earliest feasible block of calendar time for a task per person, ranks the
// discovered slots, and reports the busy intervals around them.
package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/crewdeck/assigner/internal/domain/model"
)

// Workday constants. Slots are anchored to a UTC workday.
const (
	workdayHours     = 8
	workdayStartHour = 9
	minSlotHours     = 1
)

const flowName = "scheduling"

// Repository provides the task, people and busy data for one propose run.
type Repository interface {
	// GetTask returns the task, or (nil, nil) when it does not exist.
	GetTask(ctx context.Context, taskID string) (*model.Task, error)
	// ListPeople returns everyone eligible for scheduling.
	ListPeople(ctx context.Context) ([]model.Person, error)
	// GetPersonEvents returns calendar events overlapping [start, end].
	GetPersonEvents(ctx context.Context, personID string, start, end time.Time) ([]model.CalendarEvent, error)
	// GetPersonAssignments returns assignments whose task is due within
	// [start, end], joined with the task's title, due date and effort.
	GetPersonAssignments(ctx context.Context, personID string, start, end time.Time) ([]model.AssignmentRecord, error)
}

// Engine searches for free slots. It holds no mutable state between calls.
type Engine struct {
	repo Repository
	cfg  Config
	now  func() time.Time
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithConfig replaces the default search configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg.sanitized()
	}
}

// New creates a scheduling engine backed by repo.
func New(repo Repository, opts ...Option) *Engine {
	e := &Engine{
		repo: repo,
		cfg:  DefaultConfig(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// personCandidate couples a discovered slot with its day's conflicts.
type personCandidate struct {
	slot       model.TimeSlot
	conflicts  []model.Conflict
	personName string
}

// Propose finds the earliest feasible slot per person within the search
// window and returns the ranked proposal.
func (e *Engine) Propose(ctx context.Context, taskID string, opts ...ProposeOption) (*model.ScheduleProposal, error) {
	var call callOptions
	for _, opt := range opts {
		opt(&call)
	}

	rangeStart := call.startDate
	if rangeStart.IsZero() {
		rangeStart = e.now().UTC()
	}
	maxResults := call.maxResults
	if maxResults <= 0 {
		maxResults = e.cfg.MaxResults
	}

	task, err := e.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, model.NewFlowError(flowName, "getTask", err)
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrTaskNotFound)
	}

	rangeEnd := call.endDate
	if rangeEnd.IsZero() {
		if task.DueAt != nil {
			rangeEnd = *task.DueAt
		} else {
			rangeEnd = rangeStart.AddDate(0, 0, e.cfg.WindowDays)
		}
	}
	// A proposal must never recommend time past the deadline.
	if task.DueAt != nil && rangeEnd.After(*task.DueAt) {
		rangeEnd = *task.DueAt
	}
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNoScheduleAvailable)
	}

	effortHours := task.EffortHours
	if effortHours <= 0 {
		effortHours = 1
	}
	// A task is never scheduled in a single block longer than one workday;
	// longer efforts are represented by their first feasible block only.
	slotHours := clamp(effortHours, minSlotHours, workdayHours)

	people, err := e.repo.ListPeople(ctx)
	if err != nil {
		return nil, model.NewFlowError(flowName, "listPeople", err)
	}

	// Each person's fetches and slot walk touch only that person's data, so
	// they run in parallel. Ranking is re-derived deterministically below.
	type outcome struct {
		candidate *personCandidate
		err       error
	}
	outcomes := make([]outcome, len(people))
	var wg sync.WaitGroup
	for i, person := range people {
		if person.AvailableHours() <= 0 {
			continue
		}
		wg.Add(1)
		go func(i int, person model.Person) {
			defer wg.Done()
			c, err := e.searchPerson(ctx, person, rangeStart, rangeEnd, slotHours)
			outcomes[i] = outcome{candidate: c, err: err}
		}(i, person)
	}
	wg.Wait()

	candidates := make([]personCandidate, 0, len(people))
	for _, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		if o.candidate != nil {
			candidates = append(candidates, *o.candidate)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNoScheduleAvailable)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].slot.AvailabilityScore == candidates[j].slot.AvailabilityScore {
			return strings.Compare(candidates[i].personName, candidates[j].personName) < 0
		}
		return candidates[i].slot.AvailabilityScore > candidates[j].slot.AvailabilityScore
	})
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	slots := make([]model.TimeSlot, len(candidates))
	// Non-nil even when empty so the field serializes as [].
	conflicts := make([]model.Conflict, 0)
	for i, c := range candidates {
		slots[i] = c.slot
		conflicts = append(conflicts, c.conflicts...)
	}
	recommendation := slots[0]

	return &model.ScheduleProposal{
		TaskID:         taskID,
		ProposedSlots:  slots,
		Recommendation: &recommendation,
		Conflicts:      conflicts,
		ComputedAt:     e.now().UTC(),
	}, nil
}

// searchPerson fetches one person's busy data and walks the range for the
// first fitting gap. Returns (nil, nil) when nothing fits.
func (e *Engine) searchPerson(ctx context.Context, person model.Person, rangeStart, rangeEnd time.Time, slotHours float64) (*personCandidate, error) {
	events, err := e.repo.GetPersonEvents(ctx, person.ID, rangeStart, rangeEnd)
	if err != nil {
		return nil, model.NewFlowError(flowName, "getPersonEvents", err)
	}
	assignments, err := e.repo.GetPersonAssignments(ctx, person.ID, rangeStart, rangeEnd)
	if err != nil {
		return nil, model.NewFlowError(flowName, "getPersonAssignments", err)
	}

	busy := make([]busyInterval, 0, len(events)+len(assignments))
	for _, ev := range events {
		busy = append(busy, eventInterval(ev))
	}
	for _, rec := range assignments {
		if iv, ok := assignmentInterval(rec); ok {
			busy = append(busy, iv)
		}
	}
	sort.SliceStable(busy, func(i, j int) bool { return busy[i].start.Before(busy[j].start) })

	slot, conflicts, found := findFirstSlot(person.ID, busy, rangeStart, rangeEnd, slotHours)
	if !found {
		return nil, nil
	}
	return &personCandidate{slot: slot, conflicts: conflicts, personName: person.Name}, nil
}

// findFirstSlot walks each day in [rangeStart, rangeEnd] in order and returns
// the first gap of at least slotHours inside the workday window. The search
// is greedy: it stops at the first day that fits rather than the best day.
func findFirstSlot(personID string, busy []busyInterval, rangeStart, rangeEnd time.Time, slotHours float64) (model.TimeSlot, []model.Conflict, bool) {
	limit := startOfDay(rangeEnd)
	for day := startOfDay(rangeStart); !day.After(limit); day = day.AddDate(0, 0, 1) {
		workStart := day.Add(workdayStartHour * time.Hour)
		workEnd := workStart.Add(workdayHours * time.Hour)

		dayBusy := make([]busyInterval, 0, len(busy))
		for _, iv := range busy {
			if iv.start.Before(workEnd) && iv.end.After(workStart) {
				dayBusy = append(dayBusy, iv)
			}
		}

		cursor := workStart
		for _, iv := range dayBusy {
			ivStart := laterOf(iv.start, workStart)
			ivEnd := earlierOf(iv.end, workEnd)
			if gap := hoursBetween(cursor, ivStart); gap >= slotHours {
				return makeSlot(personID, cursor, slotHours, gap), dayConflicts(personID, dayBusy), true
			}
			if ivEnd.After(cursor) {
				cursor = ivEnd
			}
		}
		if gap := hoursBetween(cursor, workEnd); gap >= slotHours {
			return makeSlot(personID, cursor, slotHours, gap), dayConflicts(personID, dayBusy), true
		}
	}
	return model.TimeSlot{}, nil, false
}

func makeSlot(personID string, start time.Time, slotHours, gapHours float64) model.TimeSlot {
	return model.TimeSlot{
		Start:    start,
		End:      start.Add(time.Duration(slotHours * float64(time.Hour))),
		PersonID: personID,
		// Slack relative to the whole workday, not just the slot.
		AvailabilityScore: clamp(gapHours/workdayHours, 0, 1),
	}
}

// dayConflicts reports every busy interval on the chosen day, including ones
// that do not overlap the slot itself.
func dayConflicts(personID string, dayBusy []busyInterval) []model.Conflict {
	conflicts := make([]model.Conflict, len(dayBusy))
	for i, iv := range dayBusy {
		conflicts[i] = iv.conflict(personID)
	}
	return conflicts
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func hoursBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
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
