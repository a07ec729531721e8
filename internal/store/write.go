package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/taskman/internal/task"
)

// Insert stores t as a new row and returns it with the assigned ID.
// The caller stamps CreatedAt and UpdatedAt; t.ID is ignored.
//
// Priority and status outside their enumerations are rejected by the
// table's CHECK constraints and surface as an error.
func (s *Store) Insert(ctx context.Context, t task.Task) (task.Task, error) {
	tagsJSON, err := marshalTags(t.Tags)
	if err != nil {
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks
		(title, description, priority, status, deadline, tags, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.Title,
		t.Description,
		string(t.Priority),
		string(t.Status),
		deadlineValue(t.Deadline),
		tagsJSON,
		t.Notes,
		task.FormatTimestamp(t.CreatedAt),
		task.FormatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return task.Task{}, fmt.Errorf("insert task: last insert id: %w", err)
	}

	t.ID = id
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, nil
}

// UpdateStatus sets the status of task id and refreshes updated_at.
// Returns false if no task has that id. Any transition is allowed.
//
// updated_at becomes the later of its current value and at, so it never
// moves backwards even if the wall clock does.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status task.Status, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = ?, updated_at = max(updated_at, ?)
		WHERE id = ?
	`, string(status), task.FormatTimestamp(at), id)
	if err != nil {
		return false, fmt.Errorf("update task %d status: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update task %d status: rows affected: %w", id, err)
	}
	return n > 0, nil
}

// Delete permanently removes task id. Returns false if no task has that id.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete task %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task %d: rows affected: %w", id, err)
	}
	return n > 0, nil
}
