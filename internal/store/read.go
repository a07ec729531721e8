package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/taskman/internal/queryir"
	"github.com/roach88/taskman/internal/querysql"
	"github.com/roach88/taskman/internal/task"
)

// Filter narrows List. Zero-valued fields are not applied; the rest must
// all match.
type Filter struct {
	Status   task.Status   // exact match
	Priority task.Priority // exact match
	Search   string        // case-sensitive substring of title or description
}

// Query builds the queryir form of f with the standard task ordering.
func (f Filter) Query() queryir.Select {
	var preds []queryir.Predicate
	if f.Status != "" {
		preds = append(preds, queryir.Equals{Field: "status", Value: string(f.Status)})
	}
	if f.Priority != "" {
		preds = append(preds, queryir.Equals{Field: "priority", Value: string(f.Priority)})
	}
	if f.Search != "" {
		preds = append(preds, queryir.Contains{
			Fields: []string{"title", "description"},
			Term:   f.Search,
		})
	}

	q := queryir.Select{
		From:    "tasks",
		Columns: taskColumns,
		Order:   standardOrder(),
	}
	if len(preds) > 0 {
		q.Filter = queryir.And{Predicates: preds}
	}
	return q
}

// standardOrder is priority rank, then deadline with NULLs last, then
// creation time. The compiler appends id as the final key.
func standardOrder() []queryir.OrderTerm {
	ranking := make([]string, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		ranking = append(ranking, string(p))
	}
	return []queryir.OrderTerm{
		queryir.Ranked{Field: "priority", Ranking: ranking},
		queryir.Ascending{Field: "deadline", NullsLast: true},
		queryir.Ascending{Field: "created_at"},
	}
}

// List returns the tasks matching f in standard order.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) List(ctx context.Context, f Filter) ([]task.Task, error) {
	query, params, err := querysql.Compile(f.Query())
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: scan: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: iterate: %w", err)
	}

	return tasks, nil
}

// Get returns task id. The boolean is false if no task has that id.
func (s *Store) Get(ctx context.Context, id int64) (task.Task, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+strings.Join(taskColumns, ", ")+" FROM tasks WHERE id = ?", id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, false, nil
	}
	if err != nil {
		return task.Task{}, false, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, true, nil
}
