package scheduling

import (
	"time"

	"github.com/crewdeck/assigner/internal/domain/model"
)

// Conflict reasons by interval kind.
const (
	reasonEvent      = "Calendar event"
	reasonAssignment = "Existing task assignment"
)

// busyInterval is the tagged union the slot walk operates on: a real calendar
// event or a synthetic interval derived from an existing assignment. The walk
// is kind-agnostic; kind only matters when building conflicts.
type busyInterval struct {
	start  time.Time
	end    time.Time
	kind   model.ConflictType
	title  string
	source string
}

func (iv busyInterval) conflict(personID string) model.Conflict {
	reason := reasonEvent
	if iv.kind == model.ConflictAssignment {
		reason = reasonAssignment
	}
	return model.Conflict{
		PersonID: personID,
		Type:     iv.kind,
		Start:    iv.start,
		End:      iv.end,
		Title:    iv.title,
		Source:   iv.source,
		Reason:   reason,
	}
}

func eventInterval(ev model.CalendarEvent) busyInterval {
	title := ev.Title
	if title == "" {
		title = ev.Type
	}
	return busyInterval{
		start:  ev.StartAt,
		end:    ev.EndAt,
		kind:   model.ConflictEvent,
		title:  title,
		source: ev.Source,
	}
}

// assignmentInterval converts an assignment into a synthetic busy interval
// anchored at 09:00 on its task's due-date workday, clipped to the workday
// window. Assignments without a due date produce nothing.
func assignmentInterval(rec model.AssignmentRecord) (busyInterval, bool) {
	if rec.TaskDueAt == nil {
		return busyInterval{}, false
	}
	day := startOfDay(*rec.TaskDueAt)
	start := day.Add(workdayStartHour * time.Hour)
	workEnd := start.Add(workdayHours * time.Hour)

	hours := rec.TaskEffortHours
	if rec.AllocatedHours != nil {
		hours = *rec.AllocatedHours
	}
	hours = clamp(hours, minSlotHours, workdayHours)

	end := start.Add(time.Duration(hours * float64(time.Hour)))
	if end.After(workEnd) {
		end = workEnd
	}
	return busyInterval{
		start: start,
		end:   end,
		kind:  model.ConflictAssignment,
		title: rec.TaskTitle,
	}, true
}
