package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/roach88/taskman/internal/store"
	"github.com/roach88/taskman/internal/task"
)

// Engine is the task manager. It holds no task state of its own; the store
// is the only persistent state.
type Engine struct {
	store *store.Store
	clock Clock
}

// New creates an engine over st. A nil clock means SystemClock.
func New(st *store.Store, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{store: st, clock: clock}
}

// Today returns the current calendar date according to the engine clock.
func (e *Engine) Today() task.Date {
	return task.DateOf(e.clock.Now().Local())
}

// Add creates a pending task and returns it with its assigned ID.
//
// The caller is responsible for rejecting an empty title. An empty priority
// becomes task.DefaultPriority; nil tags become an empty list.
func (e *Engine) Add(ctx context.Context, n task.New) (task.Task, error) {
	now := task.Stamp(e.clock.Now())

	priority := n.Priority
	if priority == "" {
		priority = task.DefaultPriority
	}

	t := task.Task{
		Title:       task.NormalizeText(n.Title),
		Description: task.NormalizeText(n.Description),
		Priority:    priority,
		Status:      task.StatusPending,
		Deadline:    n.Deadline,
		Tags:        task.NormalizeTags(n.Tags),
		Notes:       task.NormalizeText(n.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := e.store.Insert(ctx, t)
	if err != nil {
		return task.Task{}, fmt.Errorf("add task: %w", err)
	}
	return stored, nil
}

// List returns the tasks matching f in standard order.
func (e *Engine) List(ctx context.Context, f store.Filter) ([]task.Task, error) {
	f.Search = task.NormalizeText(f.Search)
	return e.store.List(ctx, f)
}

// Get returns task id; the boolean is false if it does not exist.
func (e *Engine) Get(ctx context.Context, id int64) (task.Task, bool, error) {
	return e.store.Get(ctx, id)
}

// UpdateStatus moves task id to status and refreshes its updated_at.
// Returns false if the task does not exist.
func (e *Engine) UpdateStatus(ctx context.Context, id int64, status task.Status) (bool, error) {
	return e.store.UpdateStatus(ctx, id, status, task.Stamp(e.clock.Now()))
}

// Delete permanently removes task id. Returns false if it does not exist.
func (e *Engine) Delete(ctx context.Context, id int64) (bool, error) {
	return e.store.Delete(ctx, id)
}

// Export writes every task, in standard order, to w as an indented JSON
// array of flat records. Returns the number of records written.
func (e *Engine) Export(ctx context.Context, w io.Writer) (int, error) {
	tasks, err := e.store.List(ctx, store.Filter{})
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	records := make([]task.Record, len(tasks))
	for i, t := range tasks {
		records[i] = t.Record()
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return 0, fmt.Errorf("export: encode: %w", err)
	}
	return len(records), nil
}

// ExportFile writes the export to path, replacing any existing file. The
// tasks are read and encoded before path is touched, so a failed read
// leaves an earlier export intact.
func (e *Engine) ExportFile(ctx context.Context, path string) (int, error) {
	var buf bytes.Buffer
	count, err := e.Export(ctx, &buf)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	return count, nil
}

// Stats summarizes all stored tasks.
type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	Overdue    int            `json:"overdue"`
}

// Stats counts every task by status and by priority and counts the tasks
// that are overdue as of the engine clock's today. Only values that occur
// appear as map keys.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	tasks, err := e.store.List(ctx, store.Filter{})
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}

	today := e.Today()
	s := Stats{
		Total:      len(tasks),
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}
	for _, t := range tasks {
		s.ByStatus[string(t.Status)]++
		s.ByPriority[string(t.Priority)]++
		if t.IsOverdue(today) {
			s.Overdue++
		}
	}
	return s, nil
}
