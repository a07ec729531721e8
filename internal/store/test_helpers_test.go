package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/taskman/internal/task"
)

// baseTime is the creation instant used by newTestTask; callers add offsets
// to control creation order.
var baseTime = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestTask builds a pending task created offset after baseTime.
func newTestTask(title string, priority task.Priority, deadline string, offset time.Duration) task.Task {
	d, err := task.ParseDate(deadline)
	if err != nil {
		panic(err)
	}
	at := baseTime.Add(offset)
	return task.Task{
		Title:     title,
		Priority:  priority,
		Status:    task.StatusPending,
		Deadline:  d,
		Tags:      []string{},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// insertTestTask inserts t and fails the test on error.
func insertTestTask(t *testing.T, s *Store, tk task.Task) task.Task {
	t.Helper()
	stored, err := s.Insert(context.Background(), tk)
	require.NoError(t, err)
	return stored
}

// titles returns the titles of tasks in order.
func titles(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.Title
	}
	return out
}
