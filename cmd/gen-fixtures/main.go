// Command gen-fixtures writes a random YAML dataset the service can load
// through its fixtures option. Useful for demos and load experiments.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/yaml"
)

// Default generation constants.
const (
	defaultPeople      = 20
	defaultTasks       = 10
	defaultEvents      = 30
	defaultAssignments = 10
	defaultSeed        = 42

	maxSkillYears     = 12
	maxEffortHours    = 16
	maxLoadHours      = 35
	maxDueDays        = 14
	meetingHoursMax   = 3
	maxAllocatedHours = 8
)

var skillNames = []string{"go", "sql", "react", "kubernetes", "terraform", "python", "design", "writing"}

var levelNames = []string{"beginner", "junior", "intermediate", "mid", "senior", "expert", "principal"}

var priorities = []string{"REQUIRED", "PREFERRED", "BONUS"}

func main() {
	var (
		people      = flag.Int("people", defaultPeople, "Number of people to generate")
		tasks       = flag.Int("tasks", defaultTasks, "Number of tasks to generate")
		events      = flag.Int("events", defaultEvents, "Number of calendar events to generate")
		assignments = flag.Int("assignments", defaultAssignments, "Number of task assignments to generate")
		seed        = flag.Int64("seed", defaultSeed, "Random seed")
		output      = flag.String("output", "fixtures.yaml", "Output file path")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now().UTC().Truncate(24 * time.Hour)

	skillIDs := make(map[string]string, len(skillNames))
	for _, name := range skillNames {
		skillIDs[name] = uuid.New().String()
	}

	personIDs := make([]string, *people)
	personList := make([]map[string]interface{}, *people)
	for i := range personList {
		personIDs[i] = uuid.New().String()
		var skills []map[string]interface{}
		for _, name := range pickSkills(rng) {
			skills = append(skills, map[string]interface{}{
				"skill_id":   skillIDs[name],
				"skill_name": name,
				"level":      levelNames[rng.Intn(len(levelNames))],
				"years":      float64(rng.Intn(maxSkillYears)),
			})
		}
		personList[i] = map[string]interface{}{
			"id":                    personIDs[i],
			"name":                  fmt.Sprintf("Person %03d", i+1),
			"weekly_capacity_hours": 40.0,
			"current_load_hours":    float64(rng.Intn(maxLoadHours)),
			"skills":                skills,
		}
	}

	taskList := make([]map[string]interface{}, *tasks)
	for i := range taskList {
		var required []map[string]interface{}
		for _, name := range pickSkills(rng) {
			required = append(required, map[string]interface{}{
				"skill_id":       skillIDs[name],
				"skill_name":     name,
				"required_level": levelNames[rng.Intn(len(levelNames))],
				"priority":       priorities[rng.Intn(len(priorities))],
			})
		}
		due := now.AddDate(0, 0, 1+rng.Intn(maxDueDays))
		taskList[i] = map[string]interface{}{
			"id":              uuid.New().String(),
			"title":           fmt.Sprintf("Task %03d", i+1),
			"effort_hours":    float64(1 + rng.Intn(maxEffortHours)),
			"due_at":          due.Format(time.RFC3339),
			"required_skills": required,
		}
	}

	eventList := make([]map[string]interface{}, *events)
	for i := range eventList {
		day := now.AddDate(0, 0, rng.Intn(maxDueDays))
		start := day.Add(time.Duration(9+rng.Intn(6)) * time.Hour)
		end := start.Add(time.Duration(1+rng.Intn(meetingHoursMax)) * time.Hour)
		eventList[i] = map[string]interface{}{
			"id":        uuid.New().String(),
			"person_id": personIDs[rng.Intn(len(personIDs))],
			"start_at":  start.Format(time.RFC3339),
			"end_at":    end.Format(time.RFC3339),
			"type":      "meeting",
			"source":    "generated",
			"title":     fmt.Sprintf("Meeting %03d", i+1),
		}
	}

	// Assignments put existing busy blocks on people's due days so generated
	// datasets exercise the scheduling conflict reporting.
	assignmentCount := *assignments
	if *tasks == 0 || *people == 0 {
		assignmentCount = 0
	}
	assignmentList := make([]map[string]interface{}, assignmentCount)
	for i := range assignmentList {
		a := map[string]interface{}{
			"id":        uuid.New().String(),
			"task_id":   taskList[rng.Intn(len(taskList))]["id"],
			"person_id": personIDs[rng.Intn(len(personIDs))],
		}
		// Leave allocated_hours unset on some records so the task effort
		// fallback gets exercised too.
		if rng.Intn(2) == 0 {
			a["allocated_hours"] = float64(1 + rng.Intn(maxAllocatedHours))
		}
		assignmentList[i] = a
	}

	out, err := yaml.Parser().Marshal(map[string]interface{}{
		"people":      personList,
		"tasks":       taskList,
		"events":      eventList,
		"assignments": assignmentList,
	})
	if err != nil {
		os.Stderr.WriteString("marshal fixtures: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		os.Stderr.WriteString("write fixtures: " + err.Error() + "\n")
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %d people, %d tasks, %d events, %d assignments\n",
		*output, *people, *tasks, *events, assignmentCount)
}

// pickSkills returns one to three distinct skill names.
func pickSkills(rng *rand.Rand) []string {
	count := 1 + rng.Intn(3)
	perm := rng.Perm(len(skillNames))
	out := make([]string, 0, count)
	for _, idx := range perm[:count] {
		out = append(out, skillNames[idx])
	}
	return out
}
