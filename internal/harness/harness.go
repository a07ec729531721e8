package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/taskman/internal/engine"
	"github.com/roach88/taskman/internal/store"
	"github.com/roach88/taskman/internal/task"
	"github.com/roach88/taskman/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs scenarios with a deterministic clock and run ID.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.StepClock
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database. Setup tasks are added
// first, then the flow runs with expect validation, then assertions are
// evaluated. Storage failures abort the run and are returned as errors;
// expectation and assertion failures are collected in the Result. Scenarios
// built in code are validated the same way as loaded ones.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with step logging sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	start, err := startTime(scenario.Today)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	clock := testutil.NewStepClock(start, time.Second)
	runIDs := testutil.NewFixedRunIDGenerator(scenario.RunID)

	h := &Harness{
		store:  st,
		engine: engine.New(st, clock),
		clock:  clock,
		logger: logger.With("run_id", runIDs.Generate(), "scenario", scenario.Name),
	}

	ctx := context.Background()
	result := NewResult()

	for i, spec := range scenario.Setup {
		if _, err := h.add(ctx, spec, result); err != nil {
			return nil, fmt.Errorf("setup step %d: %w", i, err)
		}
	}

	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	tasks, err := h.engine.List(ctx, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list final state: %w", err)
	}
	for _, t := range tasks {
		result.Tasks = append(result.Tasks, t.Record())
	}

	actx := &AssertionContext{
		Engine: h.engine,
		Ctx:    ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func startTime(today string) (time.Time, error) {
	if today == "" {
		today = DefaultToday
	}
	day, err := time.ParseInLocation(time.DateOnly, today, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid today %q: %w", today, err)
	}
	// Noon, so that a day of clock steps never crosses midnight.
	return day.Add(12 * time.Hour), nil
}

// executeFlow runs all flow steps and validates expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		ev, err := h.execute(ctx, step, result)
		if err != nil {
			return fmt.Errorf("flow step %d (%s): %w", i, step.Op, err)
		}

		if step.Expect == nil {
			continue
		}
		if ev.Outcome != step.Expect.Outcome {
			result.AddError(fmt.Sprintf("flow step %d (%s): expected outcome %q, got %q",
				i, step.Op, step.Expect.Outcome, ev.Outcome))
		}
		if step.Expect.ID != 0 && ev.ID != step.Expect.ID {
			result.AddError(fmt.Sprintf("flow step %d (%s): expected id %d, got %d",
				i, step.Op, step.Expect.ID, ev.ID))
		}
	}
	return nil
}

func (h *Harness) execute(ctx context.Context, step FlowStep, result *Result) (TraceEvent, error) {
	switch step.Op {
	case OpAdd:
		return h.add(ctx, *step.Task, result)

	case OpUpdate:
		status, err := task.ParseStatus(step.Status)
		if err != nil {
			return TraceEvent{}, err
		}
		found, err := h.engine.UpdateStatus(ctx, step.ID, status)
		if err != nil {
			return TraceEvent{}, err
		}
		ev := TraceEvent{Op: OpUpdate, ID: step.ID, Status: string(status), Outcome: OutcomeUpdated}
		if !found {
			ev.Outcome = OutcomeNotFound
		}
		return h.record(result, ev), nil

	case OpDelete:
		found, err := h.engine.Delete(ctx, step.ID)
		if err != nil {
			return TraceEvent{}, err
		}
		ev := TraceEvent{Op: OpDelete, ID: step.ID, Outcome: OutcomeDeleted}
		if !found {
			ev.Outcome = OutcomeNotFound
		}
		return h.record(result, ev), nil

	case OpAdvance:
		h.clock.Set(h.clock.Peek().AddDate(0, 0, step.Days))
		ev := TraceEvent{Op: OpAdvance, Outcome: OutcomeAdvanced, Today: h.today().String()}
		return h.record(result, ev), nil
	}
	return TraceEvent{}, fmt.Errorf("unknown op %q", step.Op)
}

// add creates the task described by spec.
func (h *Harness) add(ctx context.Context, spec TaskSpec, result *Result) (TraceEvent, error) {
	n := task.New{
		Title:       spec.Title,
		Description: spec.Description,
		Tags:        spec.Tags,
		Notes:       spec.Notes,
	}
	if spec.Priority != "" {
		p, err := task.ParsePriority(spec.Priority)
		if err != nil {
			return TraceEvent{}, err
		}
		n.Priority = p
	}

	switch {
	case spec.DeadlineIn != nil:
		n.Deadline = h.today().AddDays(*spec.DeadlineIn)
	default:
		d, err := task.ParseDate(spec.Deadline)
		if err != nil {
			return TraceEvent{}, err
		}
		n.Deadline = d
	}

	t, err := h.engine.Add(ctx, n)
	if err != nil {
		return TraceEvent{}, err
	}
	return h.record(result, TraceEvent{Op: OpAdd, ID: t.ID, Outcome: OutcomeCreated}), nil
}

// today is the clock's current date. It does not advance the clock.
func (h *Harness) today() task.Date {
	return task.DateOf(h.clock.Peek().Local())
}

func (h *Harness) record(result *Result, ev TraceEvent) TraceEvent {
	result.addTrace(ev)
	ev = result.Trace[len(result.Trace)-1]
	h.logger.Debug("step executed", "seq", ev.Seq, "op", ev.Op, "id", ev.ID, "outcome", ev.Outcome)
	return ev
}
