package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOverdue(t *testing.T) {
	today := NewDate(2026, time.March, 10)
	yesterday := today.AddDays(-1)
	tomorrow := today.AddDays(1)

	tests := []struct {
		name     string
		deadline Date
		status   Status
		want     bool
	}{
		{"no deadline", Date{}, StatusPending, false},
		{"past pending", yesterday, StatusPending, true},
		{"past in progress", yesterday, StatusInProgress, true},
		{"past done", yesterday, StatusDone, false},
		{"past cancelled", yesterday, StatusCancelled, false},
		{"due today", today, StatusPending, false},
		{"future", tomorrow, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Deadline: tt.deadline, Status: tt.status}
			assert.Equal(t, tt.want, task.IsOverdue(today))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", d.String())

	zero, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())

	for _, bad := range []string{"2026-02-30", "28/02/2026", "2026-2-3", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDate_FirstDayOfYearOne(t *testing.T) {
	d, err := ParseDate("0001-01-01")
	require.NoError(t, err)
	assert.False(t, d.IsZero())
	assert.Equal(t, "0001-01-01", d.String())
	assert.True(t, d.Before(NewDate(2026, time.March, 10)))

	overdue := Task{Status: StatusPending, Deadline: d}
	assert.True(t, overdue.IsOverdue(NewDate(2026, time.March, 10)))
	require.NotNil(t, overdue.Record().Deadline)
	assert.Equal(t, "0001-01-01", *overdue.Record().Deadline)
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.March, 10, 23, 59, 59, 0, time.Local)
	assert.Equal(t, NewDate(2026, time.March, 10), DateOf(late))
}

func TestTimestampRoundTrip(t *testing.T) {
	now := Stamp(time.Date(2026, time.March, 10, 8, 30, 15, 123456789, time.Local))
	s := FormatTimestamp(now)
	assert.Equal(t, "2026-03-10T08:30:15.123456", s)

	parsed, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, now.Equal(parsed))
}

func TestTimestampLexicalOrder(t *testing.T) {
	a := FormatTimestamp(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.Local))
	b := FormatTimestamp(time.Date(2026, time.March, 10, 8, 0, 0, 100_000, time.Local))
	assert.Less(t, a, b)
}

func TestRecord(t *testing.T) {
	created := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.Local)
	tk := Task{
		ID:        7,
		Title:     "write report",
		Priority:  PriorityHigh,
		Status:    StatusInProgress,
		CreatedAt: created,
		UpdatedAt: created,
	}

	data, err := json.Marshal(tk.Record())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "high", got["priority"])
	assert.Equal(t, "in_progress", got["status"])
	assert.Nil(t, got["deadline"])
	assert.Equal(t, []any{}, got["tags"])
	assert.Equal(t, "2026-03-10T08:00:00.000000", got["created_at"])

	tk.Deadline = NewDate(2026, time.April, 1)
	tk.Tags = []string{"work", "q2"}
	rec := tk.Record()
	require.NotNil(t, rec.Deadline)
	assert.Equal(t, "2026-04-01", *rec.Deadline)
	assert.Equal(t, []string{"work", "q2"}, rec.Tags)
}

func TestNormalizeText(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	assert.Equal(t, composed, NormalizeText(decomposed))
	assert.Equal(t, "Café", NormalizeText("Café"), "case is preserved")

	assert.Equal(t, []string{}, NormalizeTags(nil))
	assert.Equal(t, []string{composed}, NormalizeTags([]string{decomposed}))
}
