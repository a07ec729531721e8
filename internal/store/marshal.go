package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/taskman/internal/task"
)

// marshalTags converts tags to JSON array TEXT. nil becomes "[]".
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(data), nil
}

// unmarshalTags parses JSON array TEXT. Empty text yields an empty slice.
func unmarshalTags(data string) ([]string, error) {
	tags := []string{}
	if data == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// deadlineValue maps the zero Date to SQL NULL.
func deadlineValue(d task.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// taskColumns is the column list every read selects, in scanTask order.
var taskColumns = []string{
	"id", "title", "description", "priority", "status",
	"deadline", "tags", "notes", "created_at", "updated_at",
}

// scanTask reads one row selected with taskColumns.
func scanTask(row rowScanner) (task.Task, error) {
	var (
		t         task.Task
		priority  string
		status    string
		deadline  sql.NullString
		tagsJSON  string
		createdAt string
		updatedAt string
	)

	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&priority,
		&status,
		&deadline,
		&tagsJSON,
		&t.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return task.Task{}, err
	}

	t.Priority = task.Priority(priority)
	t.Status = task.Status(status)

	var err error
	if deadline.Valid {
		if t.Deadline, err = task.ParseDate(deadline.String); err != nil {
			return task.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
		}
	}
	if t.Tags, err = unmarshalTags(tagsJSON); err != nil {
		return task.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.CreatedAt, err = task.ParseTimestamp(createdAt); err != nil {
		return task.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.UpdatedAt, err = task.ParseTimestamp(updatedAt); err != nil {
		return task.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
	}

	return t, nil
}
