// Package repository provides the in-memory entity store handed to the
// matching and scheduling engines as their repository collaborator.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crewdeck/assigner/internal/domain/matching"
	"github.com/crewdeck/assigner/internal/domain/model"
)

// MemoryStore holds tasks, people, calendar events and assignments behind a
// read-write lock. It implements matching.Repository and
// scheduling.Repository; reads return copies so engine invocations see
// immutable snapshots.
type MemoryStore struct {
	mu          sync.RWMutex
	tasks       map[string]model.Task
	people      map[string]model.Person
	events      map[string][]model.CalendarEvent  // keyed by person id
	assignments map[string][]model.TaskAssignment // keyed by person id
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:       make(map[string]model.Task),
		people:      make(map[string]model.Person),
		events:      make(map[string][]model.CalendarEvent),
		assignments: make(map[string][]model.TaskAssignment),
	}
}

// PutTask stores a task, assigning an id when absent, and returns the id.
func (s *MemoryStore) PutTask(t model.Task) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	s.tasks[t.ID] = t
	return t.ID
}

// PutPerson stores a person, assigning an id when absent, and returns the id.
func (s *MemoryStore) PutPerson(p model.Person) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.people[p.ID] = p
	return p.ID
}

// PutEvent stores a calendar event, assigning an id when absent.
func (s *MemoryStore) PutEvent(ev model.CalendarEvent) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	s.events[ev.PersonID] = append(s.events[ev.PersonID], ev)
	return ev.ID
}

// PutAssignment stores a task assignment, assigning an id when absent.
func (s *MemoryStore) PutAssignment(a model.TaskAssignment) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	s.assignments[a.PersonID] = append(s.assignments[a.PersonID], a)
	return a.ID
}

// Counts returns the number of stored tasks and people.
func (s *MemoryStore) Counts() (tasks, people int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), len(s.people)
}

// GetTask returns the task with its required skills, or (nil, nil) when
// absent.
func (s *MemoryStore) GetTask(_ context.Context, taskID string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, nil
	}
	out := t
	out.RequiredSkills = append([]model.RequiredSkill(nil), t.RequiredSkills...)
	return &out, nil
}

// ListCandidates returns people matching the best-effort filter, sorted by
// name. The filter is an optimization hint; callers re-derive correctness.
func (s *MemoryStore) ListCandidates(_ context.Context, filter *matching.CandidateFilter) ([]model.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Person, 0, len(s.people))
	for _, p := range s.people {
		if filter != nil {
			if len(filter.HasAnySkills) > 0 && !holdsAny(p, filter.HasAnySkills) {
				continue
			}
			if filter.MinAvailableHours > 0 && p.Capacity() < filter.MinAvailableHours {
				continue
			}
		}
		out = append(out, copyPerson(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListPeople returns everyone, sorted by name.
func (s *MemoryStore) ListPeople(_ context.Context) ([]model.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, copyPerson(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetPersonEvents returns the person's calendar events overlapping
// [start, end], ordered by start time.
func (s *MemoryStore) GetPersonEvents(_ context.Context, personID string, start, end time.Time) ([]model.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.CalendarEvent
	for _, ev := range s.events[personID] {
		if !ev.StartAt.After(end) && !ev.EndAt.Before(start) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

// GetPersonAssignments returns the person's assignments whose task is due
// within [start, end], joined with the task's title, due date and effort.
func (s *MemoryStore) GetPersonAssignments(_ context.Context, personID string, start, end time.Time) ([]model.AssignmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.AssignmentRecord
	for _, a := range s.assignments[personID] {
		t, ok := s.tasks[a.TaskID]
		if !ok || t.DueAt == nil {
			continue
		}
		if t.DueAt.Before(start) || t.DueAt.After(end) {
			continue
		}
		out = append(out, model.AssignmentRecord{
			TaskAssignment:  a,
			TaskTitle:       t.Title,
			TaskDueAt:       t.DueAt,
			TaskEffortHours: t.EffortHours,
		})
	}
	return out, nil
}

func holdsAny(p model.Person, skillIDs []string) bool {
	for _, want := range skillIDs {
		for _, held := range p.Skills {
			if held.SkillID == want {
				return true
			}
		}
	}
	return false
}

func copyPerson(p model.Person) model.Person {
	out := p
	out.Skills = append([]model.PersonSkill(nil), p.Skills...)
	if p.WeeklyCapacityHours != nil {
		capacity := *p.WeeklyCapacityHours
		out.WeeklyCapacityHours = &capacity
	}
	return out
}
