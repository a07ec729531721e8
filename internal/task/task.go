package task

import "time"

// Task is a single trackable unit of work.
//
// ID, CreatedAt, Title, Description, Priority, Deadline, Tags and Notes are
// fixed once the task is stored. Only Status and UpdatedAt change afterwards.
type Task struct {
	ID          int64
	Title       string
	Description string
	Priority    Priority
	Status      Status
	Deadline    Date
	Tags        []string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New holds the caller-supplied fields of a task about to be created.
type New struct {
	Title       string
	Description string
	Priority    Priority // empty means DefaultPriority
	Deadline    Date
	Tags        []string
	Notes       string
}

// IsOverdue reports whether the task has a deadline strictly before today
// and is still open. A task without a deadline is never overdue.
func (t Task) IsOverdue(today Date) bool {
	if t.Deadline.IsZero() || !t.Status.Open() {
		return false
	}
	return t.Deadline.Before(today)
}

// Record is the flat export form of a task.
type Record struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Deadline    *string  `json:"deadline"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// Record converts t to its export form. Enumerations become their text
// value, a missing deadline becomes null and tags are always an array.
func (t Task) Record() Record {
	rec := Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Tags:        t.Tags,
		Notes:       t.Notes,
		CreatedAt:   FormatTimestamp(t.CreatedAt),
		UpdatedAt:   FormatTimestamp(t.UpdatedAt),
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if !t.Deadline.IsZero() {
		d := t.Deadline.String()
		rec.Deadline = &d
	}
	return rec
}
