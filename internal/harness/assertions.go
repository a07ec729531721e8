package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/taskman/internal/engine"
	"github.com/roach88/taskman/internal/store"
	"github.com/roach88/taskman/internal/task"
)

// AssertionContext provides what assertions query.
type AssertionContext struct {
	Engine *engine.Engine
	Ctx    context.Context
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s", ev.Seq, ev.Op)
		if ev.ID != 0 {
			fmt.Fprintf(&buf, " #%d", ev.ID)
		}
		if ev.Status != "" {
			fmt.Fprintf(&buf, " %s", ev.Status)
		}
		fmt.Fprintf(&buf, " -> %s\n", ev.Outcome)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns the failure
// messages. An empty slice means all assertions held.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertListOrder:
			err = assertListOrder(result.Trace, a, actx)
		case AssertStats:
			err = assertStats(result.Trace, a, actx)
		case AssertFinalState:
			err = assertFinalState(result.Trace, a, actx)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

// assertListOrder checks the titles returned by a filtered listing.
func assertListOrder(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	var filter store.Filter
	if a.Filter != nil {
		filter = store.Filter{
			Status:   task.Status(a.Filter.Status),
			Priority: task.Priority(a.Filter.Priority),
			Search:   a.Filter.Search,
		}
	}

	tasks, err := actx.Engine.List(actx.Ctx, filter)
	if err != nil {
		return err
	}
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}

	if !slices.Equal(titles, a.Titles) {
		return &AssertionError{
			Type:     AssertListOrder,
			Expected: fmt.Sprintf("%q", a.Titles),
			Actual:   fmt.Sprintf("%q", titles),
			Trace:    trace,
		}
	}
	return nil
}

// assertStats checks the fields present in the assertion against Stats.
func assertStats(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	st, err := actx.Engine.Stats(actx.Ctx)
	if err != nil {
		return err
	}

	var mismatches []string
	if a.Total != nil && *a.Total != st.Total {
		mismatches = append(mismatches, fmt.Sprintf("total %d != %d", st.Total, *a.Total))
	}
	if a.Overdue != nil && *a.Overdue != st.Overdue {
		mismatches = append(mismatches, fmt.Sprintf("overdue %d != %d", st.Overdue, *a.Overdue))
	}
	for _, k := range slices.Sorted(maps.Keys(a.ByStatus)) {
		if st.ByStatus[k] != a.ByStatus[k] {
			mismatches = append(mismatches, fmt.Sprintf("by_status[%s] %d != %d", k, st.ByStatus[k], a.ByStatus[k]))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(a.ByPriority)) {
		if st.ByPriority[k] != a.ByPriority[k] {
			mismatches = append(mismatches, fmt.Sprintf("by_priority[%s] %d != %d", k, st.ByPriority[k], a.ByPriority[k]))
		}
	}

	if len(mismatches) > 0 {
		return &AssertionError{
			Type:     AssertStats,
			Expected: "stats as listed",
			Actual:   strings.Join(mismatches, "; "),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState checks one task's export record (subset match) or that
// the task does not exist.
func assertFinalState(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	t, found, err := actx.Engine.Get(actx.Ctx, a.ID)
	if err != nil {
		return err
	}

	if a.Absent {
		if found {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("task #%d absent", a.ID),
				Actual:   fmt.Sprintf("task #%d exists (%q)", a.ID, t.Title),
				Trace:    trace,
			}
		}
		return nil
	}

	if !found {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("task #%d with %v", a.ID, a.Expect),
			Actual:   "task not found",
			Trace:    trace,
		}
	}

	actual, err := recordFields(t.Record())
	if err != nil {
		return err
	}

	var mismatches []string
	for _, field := range slices.Sorted(maps.Keys(a.Expect)) {
		want := a.Expect[field]
		got, ok := actual[field]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("unknown field %q", field))
			continue
		}
		if !matchValue(got, want) {
			mismatches = append(mismatches, fmt.Sprintf("%s: got %v, want %v", field, got, want))
		}
	}

	if len(mismatches) > 0 {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("task #%d with %v", a.ID, a.Expect),
			Actual:   strings.Join(mismatches, "; "),
			Trace:    trace,
		}
	}
	return nil
}

// recordFields flattens a record into its JSON field names.
func recordFields(rec task.Record) (map[string]any, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// matchValue compares a JSON-decoded value with a YAML-decoded one. Numbers
// decode as float64 from JSON and int from YAML, so values compare by their
// printed form.
func matchValue(got, want any) bool {
	return fmt.Sprint(got) == fmt.Sprint(want)
}
