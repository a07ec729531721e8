package task

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a task. The zero value is not a valid priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = PriorityMedium

// Priorities lists every priority from most to least urgent.
// This is also the listing sort order.
func Priorities() []Priority {
	return []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
}

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns the sort position of p: 1 for urgent through 4 for low.
// Unknown values rank after low.
func (p Priority) Rank() int {
	for i, known := range Priorities() {
		if p == known {
			return i + 1
		}
	}
	return len(Priorities()) + 1
}

func (p Priority) String() string { return string(p) }

// ParsePriority converts command-line or config text into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q: must be one of %s", s, joinValues(Priorities()))
	}
	return p, nil
}

// Status is the lifecycle state of a task. The zero value is not a valid status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone, StatusCancelled}
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Open reports whether a task in this status still needs work.
// Only open tasks can be overdue.
func (s Status) Open() bool {
	return s != StatusDone && s != StatusCancelled
}

func (s Status) String() string { return string(s) }

// ParseStatus converts command-line text into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q: must be one of %s", s, joinValues(Statuses()))
	}
	return st, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
