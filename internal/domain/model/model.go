// Package model contains domain models passed between layers.
package model

import "time"

// DefaultWeeklyCapacityHours is assumed when a person has no capacity set.
const DefaultWeeklyCapacityHours = 40.0

// Priority classifies how strongly a task demands a skill.
type Priority string

// Priority tiers and their fixed aggregation weights.
const (
	PriorityRequired  Priority = "REQUIRED"
	PriorityPreferred Priority = "PREFERRED"
	PriorityBonus     Priority = "BONUS"
)

// Weight returns the aggregation weight for the tier. Unknown or empty
// priorities count as REQUIRED.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityPreferred:
		return 0.6
	case PriorityBonus:
		return 0.3
	default:
		return 1.0
	}
}

// RequiredSkill is a skill demand attached to a task. RequiredLevel may be
// empty when the task does not care about seniority.
type RequiredSkill struct {
	SkillID       string   `json:"skill_id"`
	SkillName     string   `json:"skill_name"`
	RequiredLevel string   `json:"required_level,omitempty"`
	Priority      Priority `json:"priority"`
}

// Task is a unit of work to be assigned. Read-only to the engines.
type Task struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	EffortHours    float64         `json:"effort_hours"`
	DueAt          *time.Time      `json:"due_at,omitempty"`
	RequiredSkills []RequiredSkill `json:"required_skills,omitempty"`
}

// PersonSkill is a skill a person holds. Level may be empty; Years is zero
// when unknown.
type PersonSkill struct {
	SkillID   string  `json:"skill_id"`
	SkillName string  `json:"skill_name"`
	Level     string  `json:"level,omitempty"`
	Years     float64 `json:"years,omitempty"`
}

// Person is a candidate for assignment and scheduling.
type Person struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	WeeklyCapacityHours *float64      `json:"weekly_capacity_hours,omitempty"`
	CurrentLoadHours    float64       `json:"current_load_hours"`
	Skills              []PersonSkill `json:"skills,omitempty"`
}

// Capacity returns the weekly capacity, defaulting when unset.
func (p Person) Capacity() float64 {
	if p.WeeklyCapacityHours != nil {
		return *p.WeeklyCapacityHours
	}
	return DefaultWeeklyCapacityHours
}

// AvailableHours returns the remaining weekly hours. May be negative when a
// person is overcommitted.
func (p Person) AvailableHours() float64 {
	return p.Capacity() - p.CurrentLoadHours
}

// SkillMatch is the per-required-skill scoring result. Score is always in
// [0,1]. PersonLevel is empty when the candidate lacks the skill or holds it
// with no level recorded.
type SkillMatch struct {
	SkillID       string   `json:"skill_id"`
	SkillName     string   `json:"skill_name"`
	RequiredLevel string   `json:"required_level,omitempty"`
	PersonLevel   string   `json:"person_level,omitempty"`
	Priority      Priority `json:"priority"`
	Score         float64  `json:"score"`
}

// MatchCandidate is one scored candidate in a match result.
type MatchCandidate struct {
	PersonID      string       `json:"person_id"`
	PersonName    string       `json:"person_name"`
	SkillMatches  []SkillMatch `json:"skill_matches"`
	SkillScore    float64      `json:"skill_score"`
	CapacityScore float64      `json:"capacity_score"`
	OverallScore  float64      `json:"overall_score"`
}

// MatchResult is the ranked outcome of a match run.
type MatchResult struct {
	TaskID        string           `json:"task_id"`
	Candidates    []MatchCandidate `json:"candidates"`
	BestMatch     *MatchCandidate  `json:"best_match,omitempty"`
	Justification string           `json:"justification"`
	ComputedAt    time.Time        `json:"computed_at"`
}

// CalendarEvent is an externally-sourced busy interval for a person.
type CalendarEvent struct {
	ID       string    `json:"id"`
	PersonID string    `json:"person_id"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Type     string    `json:"type,omitempty"`
	Source   string    `json:"source,omitempty"`
	Title    string    `json:"title,omitempty"`
}

// TaskAssignment records that a person is committed to a task.
// AllocatedHours is nil when the assignment inherits the task's effort.
type TaskAssignment struct {
	ID             string   `json:"id"`
	TaskID         string   `json:"task_id"`
	PersonID       string   `json:"person_id"`
	AllocatedHours *float64 `json:"allocated_hours,omitempty"`
}

// AssignmentRecord is an assignment joined with the fields of its task that
// scheduling needs to synthesize a busy interval.
type AssignmentRecord struct {
	TaskAssignment
	TaskTitle       string     `json:"task_title"`
	TaskDueAt       *time.Time `json:"task_due_at,omitempty"`
	TaskEffortHours float64    `json:"task_effort_hours"`
}

// TimeSlot is a proposed block of working time for a person.
type TimeSlot struct {
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	PersonID          string    `json:"person_id"`
	AvailabilityScore float64   `json:"availability_score"`
}

// ConflictType tags where a busy interval came from.
type ConflictType string

// Conflict sources.
const (
	ConflictEvent      ConflictType = "event"
	ConflictAssignment ConflictType = "assignment"
)

// Conflict is a busy interval reported alongside a proposed slot.
type Conflict struct {
	PersonID string       `json:"person_id"`
	Type     ConflictType `json:"type"`
	Start    time.Time    `json:"start"`
	End      time.Time    `json:"end"`
	Title    string       `json:"title,omitempty"`
	Source   string       `json:"source,omitempty"`
	Reason   string       `json:"reason"`
}

// ScheduleProposal is the ranked outcome of a propose run.
type ScheduleProposal struct {
	TaskID         string     `json:"task_id"`
	ProposedSlots  []TimeSlot `json:"proposed_slots"`
	Recommendation *TimeSlot  `json:"recommendation,omitempty"`
	Conflicts      []Conflict `json:"conflicts"`
	ComputedAt     time.Time  `json:"computed_at"`
}
