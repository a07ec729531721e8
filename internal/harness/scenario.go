package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/taskman/internal/task"
)

// DefaultToday is the scenario date when a scenario does not set one.
const DefaultToday = "2026-01-15"

// Scenario defines an end-to-end task-manager scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Today is the date (YYYY-MM-DD) the clock starts on, at noon local
	// time. Defaults to DefaultToday.
	Today string `yaml:"today,omitempty"`

	// RunID is attached to every log record of the run.
	// Defaults to testutil's "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Setup tasks are added, in order, before the flow.
	Setup []TaskSpec `yaml:"setup,omitempty"`

	// Flow contains the operations under test.
	Flow []FlowStep `yaml:"flow,omitempty"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// TaskSpec describes a task to add.
type TaskSpec struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Priority    string   `yaml:"priority,omitempty"`
	Deadline    string   `yaml:"deadline,omitempty"`      // absolute YYYY-MM-DD
	DeadlineIn  *int     `yaml:"deadline_days,omitempty"` // relative to the clock's date
	Tags        []string `yaml:"tags,omitempty"`
	Notes       string   `yaml:"notes,omitempty"`
}

// Flow operations.
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpAdvance = "advance"
)

// FlowStep is a single operation in the flow.
type FlowStep struct {
	Op     string    `yaml:"op"`
	Task   *TaskSpec `yaml:"task,omitempty"`   // add
	ID     int64     `yaml:"id,omitempty"`     // update, delete
	Status string    `yaml:"status,omitempty"` // update
	Days   int       `yaml:"days,omitempty"`   // advance

	// Expect checks the step's outcome. If nil, any outcome is accepted.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Outcome is one of created, updated, deleted, not_found, advanced.
	Outcome string `yaml:"outcome"`

	// ID, if set, is the ID an add must be assigned.
	ID int64 `yaml:"id,omitempty"`
}

// Assertion validates the state after the flow.
type Assertion struct {
	// Type is one of list_order, stats, final_state.
	Type string `yaml:"type"`

	// Filter and Titles are used by list_order.
	Filter *FilterSpec `yaml:"filter,omitempty"`
	Titles []string    `yaml:"titles,omitempty"`

	// Total, ByStatus, ByPriority and Overdue are used by stats. Only the
	// fields present are checked; map checks are exact per listed key.
	Total      *int           `yaml:"total,omitempty"`
	ByStatus   map[string]int `yaml:"by_status,omitempty"`
	ByPriority map[string]int `yaml:"by_priority,omitempty"`
	Overdue    *int           `yaml:"overdue,omitempty"`

	// ID, Expect and Absent are used by final_state. Expect is a subset
	// match against the task's export record.
	ID     int64          `yaml:"id,omitempty"`
	Expect map[string]any `yaml:"expect,omitempty"`
	Absent bool           `yaml:"absent,omitempty"`
}

// FilterSpec mirrors the list command's filters.
type FilterSpec struct {
	Status   string `yaml:"status,omitempty"`
	Priority string `yaml:"priority,omitempty"`
	Search   string `yaml:"search,omitempty"`
}

// Assertion type constants.
const (
	AssertListOrder  = "list_order"
	AssertStats      = "stats"
	AssertFinalState = "final_state"
)

var validOutcomes = map[string]bool{
	OutcomeCreated:  true,
	OutcomeUpdated:  true,
	OutcomeDeleted:  true,
	OutcomeNotFound: true,
	OutcomeAdvanced: true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Today != "" {
		if _, err := time.Parse(time.DateOnly, s.Today); err != nil {
			return fmt.Errorf("today: invalid date %q: expected YYYY-MM-DD", s.Today)
		}
	}

	if len(s.Setup) == 0 && len(s.Flow) == 0 {
		return fmt.Errorf("setup or flow must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, spec := range s.Setup {
		if err := validateTaskSpec(spec); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateTaskSpec(spec TaskSpec) error {
	if spec.Title == "" {
		return fmt.Errorf("title is required")
	}
	if spec.Priority != "" {
		if _, err := task.ParsePriority(spec.Priority); err != nil {
			return err
		}
	}
	if spec.Deadline != "" && spec.DeadlineIn != nil {
		return fmt.Errorf("deadline and deadline_days are mutually exclusive")
	}
	if _, err := task.ParseDate(spec.Deadline); err != nil {
		return err
	}
	return nil
}

func validateStep(step FlowStep) error {
	switch step.Op {
	case OpAdd:
		if step.Task == nil {
			return fmt.Errorf("task is required for add")
		}
		if err := validateTaskSpec(*step.Task); err != nil {
			return fmt.Errorf("task: %w", err)
		}
	case OpUpdate:
		if step.ID <= 0 {
			return fmt.Errorf("id is required for update")
		}
		if _, err := task.ParseStatus(step.Status); err != nil {
			return err
		}
	case OpDelete:
		if step.ID <= 0 {
			return fmt.Errorf("id is required for delete")
		}
	case OpAdvance:
		if step.Days <= 0 {
			return fmt.Errorf("days must be positive for advance")
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	if step.Expect != nil && !validOutcomes[step.Expect.Outcome] {
		return fmt.Errorf("expect: unknown outcome %q", step.Expect.Outcome)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertListOrder:
		if a.Titles == nil {
			return fmt.Errorf("assertions[%d]: titles is required for list_order (use [] for none)", index)
		}
		if a.Filter != nil {
			if a.Filter.Status != "" {
				if _, err := task.ParseStatus(a.Filter.Status); err != nil {
					return fmt.Errorf("assertions[%d]: %w", index, err)
				}
			}
			if a.Filter.Priority != "" {
				if _, err := task.ParsePriority(a.Filter.Priority); err != nil {
					return fmt.Errorf("assertions[%d]: %w", index, err)
				}
			}
		}
	case AssertStats:
		if a.Total == nil && a.Overdue == nil && len(a.ByStatus) == 0 && len(a.ByPriority) == 0 {
			return fmt.Errorf("assertions[%d]: stats needs at least one of total, by_status, by_priority, overdue", index)
		}
	case AssertFinalState:
		if a.ID <= 0 {
			return fmt.Errorf("assertions[%d]: id is required for final_state", index)
		}
		if !a.Absent && len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect or absent is required for final_state", index)
		}
		if a.Absent && len(a.Expect) > 0 {
			return fmt.Errorf("assertions[%d]: expect and absent are mutually exclusive", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
