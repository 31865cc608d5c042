package repository

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/crewdeck/assigner/internal/domain/model"
)

// Fixture shapes mirror the YAML dataset a deployment can point the store
// at. Timestamps are RFC3339 strings.
type taskFixture struct {
	ID             string                 `koanf:"id"`
	Title          string                 `koanf:"title"`
	EffortHours    float64                `koanf:"effort_hours"`
	DueAt          string                 `koanf:"due_at"`
	RequiredSkills []requiredSkillFixture `koanf:"required_skills"`
}

type requiredSkillFixture struct {
	SkillID       string `koanf:"skill_id"`
	SkillName     string `koanf:"skill_name"`
	RequiredLevel string `koanf:"required_level"`
	Priority      string `koanf:"priority"`
}

type personFixture struct {
	ID                  string               `koanf:"id"`
	Name                string               `koanf:"name"`
	WeeklyCapacityHours *float64             `koanf:"weekly_capacity_hours"`
	CurrentLoadHours    float64              `koanf:"current_load_hours"`
	Skills              []personSkillFixture `koanf:"skills"`
}

type personSkillFixture struct {
	SkillID   string  `koanf:"skill_id"`
	SkillName string  `koanf:"skill_name"`
	Level     string  `koanf:"level"`
	Years     float64 `koanf:"years"`
}

type eventFixture struct {
	ID       string `koanf:"id"`
	PersonID string `koanf:"person_id"`
	StartAt  string `koanf:"start_at"`
	EndAt    string `koanf:"end_at"`
	Type     string `koanf:"type"`
	Source   string `koanf:"source"`
	Title    string `koanf:"title"`
}

type assignmentFixture struct {
	ID             string   `koanf:"id"`
	TaskID         string   `koanf:"task_id"`
	PersonID       string   `koanf:"person_id"`
	AllocatedHours *float64 `koanf:"allocated_hours"`
}

type fixtureFile struct {
	Tasks       []taskFixture       `koanf:"tasks"`
	People      []personFixture     `koanf:"people"`
	Events      []eventFixture      `koanf:"events"`
	Assignments []assignmentFixture `koanf:"assignments"`
}

// LoadFixtures populates the store from a YAML dataset file.
func (s *MemoryStore) LoadFixtures(path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFixtures, path, err)
	}
	var fx fixtureFile
	if err := k.UnmarshalWithConf("", &fx, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFixtures, path, err)
	}

	for _, t := range fx.Tasks {
		due, err := parseTime(t.DueAt)
		if err != nil {
			return fmt.Errorf("%w: task %q due_at: %v", ErrInvalidFixture, t.Title, err)
		}
		task := model.Task{
			ID:          t.ID,
			Title:       t.Title,
			EffortHours: t.EffortHours,
			DueAt:       due,
		}
		for _, rs := range t.RequiredSkills {
			task.RequiredSkills = append(task.RequiredSkills, model.RequiredSkill{
				SkillID:       rs.SkillID,
				SkillName:     rs.SkillName,
				RequiredLevel: rs.RequiredLevel,
				Priority:      model.Priority(rs.Priority),
			})
		}
		s.PutTask(task)
	}

	for _, p := range fx.People {
		person := model.Person{
			ID:                  p.ID,
			Name:                p.Name,
			WeeklyCapacityHours: p.WeeklyCapacityHours,
			CurrentLoadHours:    p.CurrentLoadHours,
		}
		for _, sk := range p.Skills {
			person.Skills = append(person.Skills, model.PersonSkill{
				SkillID:   sk.SkillID,
				SkillName: sk.SkillName,
				Level:     sk.Level,
				Years:     sk.Years,
			})
		}
		s.PutPerson(person)
	}

	for _, ev := range fx.Events {
		start, err := parseTime(ev.StartAt)
		if err != nil || start == nil {
			return fmt.Errorf("%w: event %q start_at: %v", ErrInvalidFixture, ev.Title, err)
		}
		end, err := parseTime(ev.EndAt)
		if err != nil || end == nil {
			return fmt.Errorf("%w: event %q end_at: %v", ErrInvalidFixture, ev.Title, err)
		}
		s.PutEvent(model.CalendarEvent{
			ID:       ev.ID,
			PersonID: ev.PersonID,
			StartAt:  *start,
			EndAt:    *end,
			Type:     ev.Type,
			Source:   ev.Source,
			Title:    ev.Title,
		})
	}

	for _, a := range fx.Assignments {
		s.PutAssignment(model.TaskAssignment{
			ID:             a.ID,
			TaskID:         a.TaskID,
			PersonID:       a.PersonID,
			AllocatedHours: a.AllocatedHours,
		})
	}
	return nil
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
