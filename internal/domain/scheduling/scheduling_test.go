package scheduling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crewdeck/assigner/internal/domain/model"
	"github.com/crewdeck/assigner/internal/domain/scheduling"
	. "github.com/smartystreets/goconvey/convey"
)

type stubRepo struct {
	task        *model.Task
	people      []model.Person
	events      map[string][]model.CalendarEvent
	assignments map[string][]model.AssignmentRecord

	taskErr        error
	peopleErr      error
	eventsErr      error
	assignmentsErr error
}

func (s *stubRepo) GetTask(_ context.Context, _ string) (*model.Task, error) {
	return s.task, s.taskErr
}

func (s *stubRepo) ListPeople(_ context.Context) ([]model.Person, error) {
	return s.people, s.peopleErr
}

func (s *stubRepo) GetPersonEvents(_ context.Context, personID string, _, _ time.Time) ([]model.CalendarEvent, error) {
	if s.eventsErr != nil {
		return nil, s.eventsErr
	}
	return s.events[personID], nil
}

func (s *stubRepo) GetPersonAssignments(_ context.Context, personID string, _, _ time.Time) ([]model.AssignmentRecord, error) {
	if s.assignmentsErr != nil {
		return nil, s.assignmentsErr
	}
	return s.assignments[personID], nil
}

func hoursPtr(v float64) *float64 { return &v }

// at returns a March 2026 UTC instant on the given day and hour.
func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func freePerson(id, name string) model.Person {
	return model.Person{ID: id, Name: name, WeeklyCapacityHours: hoursPtr(40)}
}

func schedTask(effort float64, due *time.Time) *model.Task {
	return &model.Task{ID: "task-1", Title: "Quarterly report", EffortHours: effort, DueAt: due}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestPropose_FirstFit(t *testing.T) {
	Convey("Given a task due at the end of the week", t, func() {
		due := at(6, 17)
		repo := &stubRepo{
			task:   schedTask(2, timePtr(due)),
			people: []model.Person{freePerson("p1", "Alice")},
		}
		engine := scheduling.New(repo)

		Convey("When the person is completely free", func() {
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the slot starts at 09:00 on the first day", func() {
				So(proposal.Recommendation.Start, ShouldEqual, at(2, 9))
				So(proposal.Recommendation.End, ShouldEqual, at(2, 11))
				So(proposal.Recommendation.PersonID, ShouldEqual, "p1")
			})

			Convey("And the availability score reflects the full free workday", func() {
				So(proposal.Recommendation.AvailabilityScore, ShouldEqual, 1.0)
			})

			Convey("And conflicts are an empty list, not absent", func() {
				So(proposal.Conflicts, ShouldNotBeNil)
				So(proposal.Conflicts, ShouldBeEmpty)
			})
		})

		Convey("When a morning meeting blocks the workday start", func() {
			repo.events = map[string][]model.CalendarEvent{
				"p1": {{PersonID: "p1", StartAt: at(2, 9), EndAt: at(2, 10), Title: "Standup", Source: "google"}},
			}
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the cursor advances past the meeting", func() {
				So(proposal.Recommendation.Start, ShouldEqual, at(2, 10))
				So(proposal.Recommendation.End, ShouldEqual, at(2, 12))
			})

			Convey("And the trailing gap drives the availability score", func() {
				So(proposal.Recommendation.AvailabilityScore, ShouldAlmostEqual, 7.0/8.0, 1e-9)
			})

			Convey("And the meeting is reported as an event conflict", func() {
				So(len(proposal.Conflicts), ShouldEqual, 1)
				So(proposal.Conflicts[0].Type, ShouldEqual, model.ConflictEvent)
				So(proposal.Conflicts[0].Title, ShouldEqual, "Standup")
				So(proposal.Conflicts[0].Source, ShouldEqual, "google")
				So(proposal.Conflicts[0].Reason, ShouldEqual, "Calendar event")
			})
		})

		Convey("When an afternoon event does not overlap the chosen slot", func() {
			repo.events = map[string][]model.CalendarEvent{
				"p1": {{PersonID: "p1", StartAt: at(2, 15), EndAt: at(2, 16), Title: "Review"}},
			}
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the slot fits before the event", func() {
				So(proposal.Recommendation.Start, ShouldEqual, at(2, 9))
			})

			Convey("And the event is still reported as an informational conflict", func() {
				So(len(proposal.Conflicts), ShouldEqual, 1)
				So(proposal.Conflicts[0].Title, ShouldEqual, "Review")
			})
		})

		Convey("When the first day is fully booked", func() {
			repo.events = map[string][]model.CalendarEvent{
				"p1": {{PersonID: "p1", StartAt: at(2, 9), EndAt: at(2, 17), Title: "Offsite"}},
			}
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the search greedily moves to the next day", func() {
				So(proposal.Recommendation.Start, ShouldEqual, at(3, 9))
			})

			Convey("And the booked day's events are not reported for the chosen day", func() {
				So(proposal.Conflicts, ShouldBeEmpty)
			})
		})

		Convey("When effort exceeds a workday", func() {
			repo.task = schedTask(20, timePtr(due))
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the slot is capped at one 8-hour block", func() {
				So(proposal.Recommendation.Start, ShouldEqual, at(2, 9))
				So(proposal.Recommendation.End, ShouldEqual, at(2, 17))
			})
		})
	})
}

func TestPropose_Assignments(t *testing.T) {
	Convey("Given an existing assignment due on the first day", t, func() {
		due := at(6, 17)
		repo := &stubRepo{
			task:   schedTask(2, timePtr(due)),
			people: []model.Person{freePerson("p1", "Alice")},
			assignments: map[string][]model.AssignmentRecord{
				"p1": {{
					TaskAssignment:  model.TaskAssignment{ID: "a1", TaskID: "task-2", PersonID: "p1", AllocatedHours: hoursPtr(3)},
					TaskTitle:       "Migration",
					TaskDueAt:       timePtr(at(2, 12)),
					TaskEffortHours: 6,
				}},
			},
		}
		engine := scheduling.New(repo)

		Convey("When proposing on that day", func() {
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the synthetic interval occupies 09:00 plus allocated hours", func() {
				So(proposal.Recommendation.Start, ShouldEqual, at(2, 12))
			})

			Convey("And the assignment surfaces as an assignment conflict", func() {
				So(len(proposal.Conflicts), ShouldEqual, 1)
				So(proposal.Conflicts[0].Type, ShouldEqual, model.ConflictAssignment)
				So(proposal.Conflicts[0].Title, ShouldEqual, "Migration")
				So(proposal.Conflicts[0].Reason, ShouldEqual, "Existing task assignment")
				So(proposal.Conflicts[0].Start, ShouldEqual, at(2, 9))
				So(proposal.Conflicts[0].End, ShouldEqual, at(2, 12))
			})
		})

		Convey("When the assignment has no allocated hours", func() {
			repo.assignments["p1"][0].AllocatedHours = nil
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the task effort drives the synthetic interval", func() {
				So(proposal.Conflicts[0].End, ShouldEqual, at(2, 15))
			})
		})
	})
}

func TestPropose_Failures(t *testing.T) {
	Convey("Given a scheduling engine", t, func() {
		Convey("When the task does not exist", func() {
			engine := scheduling.New(&stubRepo{})
			_, err := engine.Propose(context.Background(), "missing")

			So(errors.Is(err, model.ErrTaskNotFound), ShouldBeTrue)
		})

		Convey("When the task is due before the search start", func() {
			repo := &stubRepo{
				task:   schedTask(2, timePtr(at(1, 17))),
				people: []model.Person{freePerson("p1", "Alice")},
			}
			engine := scheduling.New(repo)
			_, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))

			So(errors.Is(err, model.ErrNoScheduleAvailable), ShouldBeTrue)
		})

		Convey("When the only person is fully booked on the only day in range", func() {
			repo := &stubRepo{
				task:   schedTask(4, timePtr(at(2, 23))),
				people: []model.Person{freePerson("p1", "Alice")},
				events: map[string][]model.CalendarEvent{
					"p1": {{PersonID: "p1", StartAt: at(2, 9), EndAt: at(2, 17)}},
				},
			}
			engine := scheduling.New(repo)
			_, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))

			So(errors.Is(err, model.ErrNoScheduleAvailable), ShouldBeTrue)
		})

		Convey("When every person has no remaining capacity", func() {
			loaded := model.Person{ID: "p1", Name: "Alice", WeeklyCapacityHours: hoursPtr(40), CurrentLoadHours: 40}
			repo := &stubRepo{
				task:   schedTask(2, timePtr(at(6, 17))),
				people: []model.Person{loaded},
			}
			engine := scheduling.New(repo)
			_, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))

			Convey("Then they are skipped entirely and nothing fits", func() {
				So(errors.Is(err, model.ErrNoScheduleAvailable), ShouldBeTrue)
			})
		})

		Convey("When listing people fails", func() {
			repo := &stubRepo{
				task:      schedTask(2, timePtr(at(6, 17))),
				peopleErr: errors.New("db down"),
			}
			engine := scheduling.New(repo)
			_, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))

			var flowErr *model.FlowError
			So(errors.As(err, &flowErr), ShouldBeTrue)
			So(flowErr.Op, ShouldEqual, "listPeople")
		})

		Convey("When fetching a person's events fails", func() {
			repo := &stubRepo{
				task:      schedTask(2, timePtr(at(6, 17))),
				people:    []model.Person{freePerson("p1", "Alice")},
				eventsErr: errors.New("calendar down"),
			}
			engine := scheduling.New(repo)
			_, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))

			var flowErr *model.FlowError
			So(errors.As(err, &flowErr), ShouldBeTrue)
			So(flowErr.Op, ShouldEqual, "getPersonEvents")
		})
	})
}

func TestPropose_Ranking(t *testing.T) {
	Convey("Given two people with different free time", t, func() {
		due := at(6, 17)
		repo := &stubRepo{
			task: schedTask(2, timePtr(due)),
			people: []model.Person{
				freePerson("p1", "Zoe"),
				freePerson("p2", "Alice"),
			},
			events: map[string][]model.CalendarEvent{
				"p1": {{PersonID: "p1", StartAt: at(2, 9), EndAt: at(2, 12)}},
			},
		}
		engine := scheduling.New(repo)

		Convey("When proposing", func() {
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then the freer person ranks first", func() {
				So(len(proposal.ProposedSlots), ShouldEqual, 2)
				So(proposal.ProposedSlots[0].PersonID, ShouldEqual, "p2")
				So(proposal.ProposedSlots[1].PersonID, ShouldEqual, "p1")
			})

			Convey("And the recommendation is the top slot", func() {
				So(proposal.Recommendation.PersonID, ShouldEqual, "p2")
			})
		})

		Convey("When both are equally free", func() {
			repo.events = nil
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)))
			So(err, ShouldBeNil)

			Convey("Then ties break by name ascending", func() {
				So(proposal.ProposedSlots[0].PersonID, ShouldEqual, "p2") // Alice
				So(proposal.ProposedSlots[1].PersonID, ShouldEqual, "p1") // Zoe
			})
		})

		Convey("When max results is one", func() {
			repo.events = nil
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)),
				scheduling.WithMaxResults(1))
			So(err, ShouldBeNil)

			Convey("Then the list truncates without changing the recommendation", func() {
				So(len(proposal.ProposedSlots), ShouldEqual, 1)
				So(proposal.Recommendation.PersonID, ShouldEqual, "p2")
			})
		})
	})
}

func TestPropose_Window(t *testing.T) {
	Convey("Given a task due mid-window", t, func() {
		repo := &stubRepo{
			task:   schedTask(2, timePtr(at(3, 17))),
			people: []model.Person{freePerson("p1", "Alice")},
			events: map[string][]model.CalendarEvent{
				"p1": {
					{PersonID: "p1", StartAt: at(2, 9), EndAt: at(2, 17)},
					{PersonID: "p1", StartAt: at(3, 9), EndAt: at(3, 17)},
				},
			},
		}
		engine := scheduling.New(repo)

		Convey("When the requested end extends past the due date", func() {
			_, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithStartDate(at(2, 0)),
				scheduling.WithEndDate(at(10, 0)))

			Convey("Then the due date caps the range and nothing fits", func() {
				So(errors.Is(err, model.ErrNoScheduleAvailable), ShouldBeTrue)
			})
		})

		Convey("When no explicit window is given", func() {
			repo.task = schedTask(2, nil)
			repo.events = map[string][]model.CalendarEvent{
				"p1": {{PersonID: "p1", StartAt: at(2, 9), EndAt: at(2, 17)}},
			}
			engine := scheduling.New(repo, scheduling.WithClock(func() time.Time { return at(2, 0) }))
			proposal, err := engine.Propose(context.Background(), "task-1")
			So(err, ShouldBeNil)

			Convey("Then the search starts now and spans seven days", func() {
				So(proposal.Recommendation.Start, ShouldEqual, at(3, 9))
			})

			Convey("And the computed-at timestamp comes from the clock", func() {
				So(proposal.ComputedAt, ShouldEqual, at(2, 0))
			})
		})
	})
}

func TestPropose_EngineDefaults(t *testing.T) {
	Convey("Given an engine with injected search defaults", t, func() {
		repo := &stubRepo{
			task: schedTask(2, nil),
			people: []model.Person{
				freePerson("p1", "Alice"),
				freePerson("p2", "Zoe"),
			},
		}

		Convey("When the configured max results is one", func() {
			engine := scheduling.New(repo,
				scheduling.WithClock(func() time.Time { return at(2, 0) }),
				scheduling.WithConfig(scheduling.Config{MaxResults: 1, WindowDays: 7}))
			proposal, err := engine.Propose(context.Background(), "task-1")
			So(err, ShouldBeNil)

			Convey("Then the proposal truncates without a per-call option", func() {
				So(len(proposal.ProposedSlots), ShouldEqual, 1)
				So(proposal.Recommendation.PersonID, ShouldEqual, "p1")
			})
		})

		Convey("When a per-call option is given anyway", func() {
			engine := scheduling.New(repo,
				scheduling.WithClock(func() time.Time { return at(2, 0) }),
				scheduling.WithConfig(scheduling.Config{MaxResults: 1, WindowDays: 7}))
			proposal, err := engine.Propose(context.Background(), "task-1",
				scheduling.WithMaxResults(2))
			So(err, ShouldBeNil)

			Convey("Then it overrides the engine default", func() {
				So(len(proposal.ProposedSlots), ShouldEqual, 2)
			})
		})

		Convey("When the configured window is a single day", func() {
			repo.people = []model.Person{freePerson("p1", "Alice")}
			repo.events = map[string][]model.CalendarEvent{
				"p1": {
					{PersonID: "p1", StartAt: at(2, 9), EndAt: at(2, 17)},
					{PersonID: "p1", StartAt: at(3, 9), EndAt: at(3, 17)},
				},
			}
			engine := scheduling.New(repo,
				scheduling.WithClock(func() time.Time { return at(2, 0) }),
				scheduling.WithConfig(scheduling.Config{MaxResults: 5, WindowDays: 1}))
			_, err := engine.Propose(context.Background(), "task-1")

			Convey("Then days past the window are never searched", func() {
				So(errors.Is(err, model.ErrNoScheduleAvailable), ShouldBeTrue)
			})
		})
	})
}
