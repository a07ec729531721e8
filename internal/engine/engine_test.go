package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/taskman/internal/store"
	"github.com/roach88/taskman/internal/task"
	"github.com/roach88/taskman/internal/testutil"
)

// start is noon so that stepping the clock never crosses midnight.
var start = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

func setupTestEngine(t *testing.T) (*Engine, *testutil.StepClock) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := testutil.NewStepClock(start, time.Second)
	return New(s, clock), clock
}

func mustAdd(t *testing.T, e *Engine, n task.New) task.Task {
	t.Helper()
	tk, err := e.Add(context.Background(), n)
	require.NoError(t, err)
	return tk
}

func mustDate(t *testing.T, s string) task.Date {
	t.Helper()
	d, err := task.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAdd_Defaults(t *testing.T) {
	e, _ := setupTestEngine(t)

	tk := mustAdd(t, e, task.New{Title: "water plants"})

	assert.Positive(t, tk.ID)
	assert.Equal(t, task.PriorityMedium, tk.Priority)
	assert.Equal(t, task.StatusPending, tk.Status)
	assert.True(t, tk.Deadline.IsZero())
	assert.Equal(t, []string{}, tk.Tags)
	assert.Equal(t, "", tk.Description)
	assert.Equal(t, "", tk.Notes)
	assert.True(t, tk.CreatedAt.Equal(start))
	assert.True(t, tk.CreatedAt.Equal(tk.UpdatedAt))
}

func TestAdd_KeepsSuppliedFields(t *testing.T) {
	e, _ := setupTestEngine(t)

	tk := mustAdd(t, e, task.New{
		Title:       "taxes",
		Description: "file return",
		Priority:    task.PriorityUrgent,
		Deadline:    mustDate(t, "2026-04-15"),
		Tags:        []string{"finance", "home"},
		Notes:       "bring receipts",
	})

	got, ok, err := e.Get(context.Background(), tk.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "taxes", got.Title)
	assert.Equal(t, "file return", got.Description)
	assert.Equal(t, task.PriorityUrgent, got.Priority)
	assert.Equal(t, "2026-04-15", got.Deadline.String())
	assert.Equal(t, []string{"finance", "home"}, got.Tags)
	assert.Equal(t, "bring receipts", got.Notes)
}

func TestAdd_NormalizesText(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()

	tk := mustAdd(t, e, task.New{Title: "cafe\u0301 run", Tags: []string{"cafe\u0301"}})
	assert.Equal(t, "caf\u00e9 run", tk.Title)
	assert.Equal(t, []string{"caf\u00e9"}, tk.Tags)

	// Either form of the search term finds it.
	for _, term := range []string{"caf\u00e9", "cafe\u0301"} {
		tasks, err := e.List(ctx, store.Filter{Search: term})
		require.NoError(t, err)
		assert.Len(t, tasks, 1, "term %q", term)
	}
}

func TestList_ScenarioOrder(t *testing.T) {
	e, _ := setupTestEngine(t)
	today := e.Today()

	mustAdd(t, e, task.New{Title: "A", Priority: task.PriorityLow})
	mustAdd(t, e, task.New{Title: "B", Priority: task.PriorityUrgent, Deadline: today.AddDays(-1)})
	mustAdd(t, e, task.New{Title: "C", Priority: task.PriorityUrgent, Deadline: today.AddDays(1)})

	tasks, err := e.List(context.Background(), store.Filter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "B", tasks[0].Title)
	assert.Equal(t, "C", tasks[1].Title)
	assert.Equal(t, "A", tasks[2].Title)

	stats, err := e.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Overdue)
}

func TestUpdateStatus_RefreshesUpdatedAtOnly(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()

	tk := mustAdd(t, e, task.New{Title: "x", Priority: task.PriorityHigh, Tags: []string{"t"}})

	ok, err := e.UpdateStatus(ctx, tk.ID, task.StatusInProgress)
	require.NoError(t, err)
	require.True(t, ok)

	got, _, err := e.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, got.Status)
	assert.True(t, got.CreatedAt.Equal(tk.CreatedAt), "created_at is immutable")
	assert.True(t, got.UpdatedAt.After(tk.UpdatedAt))
	assert.Equal(t, tk.Title, got.Title)
	assert.Equal(t, tk.Priority, got.Priority)
	assert.Equal(t, tk.Tags, got.Tags)
}

func TestUpdateStatus_ClockBackwards(t *testing.T) {
	e, clock := setupTestEngine(t)
	ctx := context.Background()

	tk := mustAdd(t, e, task.New{Title: "x"})
	clock.Set(start.Add(-time.Hour))

	ok, err := e.UpdateStatus(ctx, tk.ID, task.StatusDone)
	require.NoError(t, err)
	require.True(t, ok)

	got, _, err := e.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(tk.UpdatedAt))
}

func TestUpdateStatus_NotFound(t *testing.T) {
	e, _ := setupTestEngine(t)
	ok, err := e.UpdateStatus(context.Background(), 999, task.StatusDone)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()
	tk := mustAdd(t, e, task.New{Title: "x"})

	ok, err := e.Delete(ctx, tk.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Delete(ctx, tk.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExport_RecordsInStandardOrder(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()

	mustAdd(t, e, task.New{Title: "low", Priority: task.PriorityLow, Tags: []string{"a", "b"}})
	mustAdd(t, e, task.New{Title: "urgent", Priority: task.PriorityUrgent, Deadline: mustDate(t, "2026-03-01")})

	var buf bytes.Buffer
	n, err := e.Export(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, n)

	assert.Equal(t, "urgent", records[0]["title"])
	assert.Equal(t, "urgent", records[0]["priority"])
	assert.Equal(t, "pending", records[0]["status"])
	assert.Equal(t, "2026-03-01", records[0]["deadline"])
	assert.Equal(t, []any{}, records[0]["tags"])

	assert.Equal(t, "low", records[1]["title"])
	assert.Nil(t, records[1]["deadline"])
	assert.Equal(t, []any{"a", "b"}, records[1]["tags"])

	for _, rec := range records {
		for _, key := range []string{"id", "title", "description", "priority", "status",
			"deadline", "tags", "notes", "created_at", "updated_at"} {
			assert.Contains(t, rec, key)
		}
	}
}

func TestExport_EmptyIsEmptyArray(t *testing.T) {
	e, _ := setupTestEngine(t)

	var buf bytes.Buffer
	n, err := e.Export(context.Background(), &buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportFile(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()
	mustAdd(t, e, task.New{Title: "one"})
	mustAdd(t, e, task.New{Title: "two"})

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the export"), 0o644))

	n, err := e.ExportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []task.Record
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 2)
}

func TestExportFile_BadPath(t *testing.T) {
	e, _ := setupTestEngine(t)
	_, err := e.ExportFile(context.Background(), filepath.Join(t.TempDir(), "missing", "out.json"))
	require.Error(t, err)
}

func TestExportFile_StoreFailureKeepsExistingFile(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	e := New(s, testutil.NewStepClock(start, time.Second))
	mustAdd(t, e, task.New{Title: "one"})

	path := filepath.Join(t.TempDir(), "out.json")
	previous := []byte(`[{"id":1}]`)
	require.NoError(t, os.WriteFile(path, previous, 0o644))

	require.NoError(t, s.Close())
	_, err = e.ExportFile(context.Background(), path)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, previous, data)
}

func TestStats(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()
	today := e.Today()
	past := today.AddDays(-3)

	mustAdd(t, e, task.New{Title: "open past", Priority: task.PriorityHigh, Deadline: past})
	wip := mustAdd(t, e, task.New{Title: "wip past", Priority: task.PriorityHigh, Deadline: past})
	done := mustAdd(t, e, task.New{Title: "done past", Priority: task.PriorityLow, Deadline: past})
	cancelled := mustAdd(t, e, task.New{Title: "cancelled past", Priority: task.PriorityLow, Deadline: past})
	mustAdd(t, e, task.New{Title: "no deadline", Priority: task.PriorityUrgent})
	mustAdd(t, e, task.New{Title: "due today", Deadline: today})

	for id, st := range map[int64]task.Status{
		wip.ID:       task.StatusInProgress,
		done.ID:      task.StatusDone,
		cancelled.ID: task.StatusCancelled,
	} {
		ok, err := e.UpdateStatus(ctx, id, st)
		require.NoError(t, err)
		require.True(t, ok)
	}

	stats, err := e.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, map[string]int{"pending": 3, "in_progress": 1, "done": 1, "cancelled": 1}, stats.ByStatus)
	assert.Equal(t, map[string]int{"high": 2, "low": 2, "urgent": 1, "medium": 1}, stats.ByPriority)
	assert.Equal(t, 2, stats.Overdue)

	// Counts sum to the total and overdue matches an independent recount.
	tasks, err := e.List(ctx, store.Filter{})
	require.NoError(t, err)
	sum := func(m map[string]int) int {
		total := 0
		for _, n := range m {
			total += n
		}
		return total
	}
	assert.Equal(t, stats.Total, sum(stats.ByStatus))
	assert.Equal(t, stats.Total, sum(stats.ByPriority))
	overdue := 0
	for _, tk := range tasks {
		if tk.IsOverdue(today) {
			overdue++
		}
	}
	assert.Equal(t, overdue, stats.Overdue)
}

func TestStats_Empty(t *testing.T) {
	e, _ := setupTestEngine(t)
	stats, err := e.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByStatus)
	assert.Empty(t, stats.ByPriority)
	assert.Zero(t, stats.Overdue)
}
