package cli

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/roach88/taskman/internal/config"
	"github.com/roach88/taskman/internal/engine"
	"github.com/roach88/taskman/internal/task"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"

	maxBarWidth       = 40
	descriptionPrefix = "            "
	descriptionRunes  = 100
)

// palette holds the escape sequences used by the text renderers. The zero
// value renders without color.
type palette struct {
	reset, bold, header string
	date                string
	priority            map[task.Priority]string
	status              map[task.Status]string
	overdue             string
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{}
	}
	return palette{
		reset:  ansiReset,
		bold:   ansiBold,
		header: ansiBold + ansiBlue,
		date:   ansiYellow,
		priority: map[task.Priority]string{
			task.PriorityUrgent: ansiRed,
			task.PriorityHigh:   ansiYellow,
			task.PriorityMedium: ansiCyan,
			task.PriorityLow:    ansiGreen,
		},
		status: map[task.Status]string{
			task.StatusPending:    ansiCyan,
			task.StatusInProgress: ansiYellow,
			task.StatusDone:       ansiGreen,
			task.StatusCancelled:  ansiRed,
		},
		overdue: ansiRed,
	}
}

// histogram returns the color of a status row in the status summary:
// finished states stand out, everything else is cyan.
func (p palette) histogram(status string) string {
	if p.reset == "" {
		return ""
	}
	switch task.Status(status) {
	case task.StatusDone:
		return ansiGreen
	case task.StatusCancelled:
		return ansiRed
	}
	return ansiCyan
}

// colorEnabled resolves a color mode against the writer output goes to.
// Auto colors only a terminal.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func renderList(w io.Writer, p palette, tasks []task.Task, today task.Date) {
	if len(tasks) == 0 {
		fmt.Fprintf(w, "%sNo tasks found.%s\n", p.date, p.reset)
		return
	}

	fmt.Fprintf(w, "\n%s── Tasks (%d) %s%s\n", p.header, len(tasks), rule(40), p.reset)
	fmt.Fprintf(w, "  %-5s %-9s %-14s Title\n", "#", "Priority", "Status")
	fmt.Fprintf(w, "  %s %s %s %s\n", rule(5), rule(8), rule(13), rule(30))

	for _, t := range tasks {
		var overdue, due, tags string
		if t.IsOverdue(today) {
			overdue = " " + p.overdue + "[OVERDUE]" + p.reset
		}
		if !t.Deadline.IsZero() {
			due = "  due:" + p.date + t.Deadline.String() + p.reset
		}
		if len(t.Tags) > 0 {
			tags = "  [" + strings.Join(t.Tags, ", ") + "]"
		}

		fmt.Fprintf(w, "  %s#%-4d%s %s%-8s%s %s%-13s%s %s%s%s%s\n",
			p.bold, t.ID, p.reset,
			p.priority[t.Priority], t.Priority, p.reset,
			p.status[t.Status], t.Status, p.reset,
			t.Title, overdue, due, tags)

		if t.Description != "" {
			fmt.Fprintf(w, "%s%s\n", descriptionPrefix, truncateRunes(t.Description, descriptionRunes))
		}
	}
	fmt.Fprintln(w)
}

// renderStats prints the status summary. Histogram rows are sorted by name.
func renderStats(w io.Writer, p palette, st engine.Stats) {
	fmt.Fprintf(w, "\n%s── Task Manager Status %s%s\n", p.header, rule(38), p.reset)
	fmt.Fprintf(w, "  Total tasks : %s%d%s\n", p.bold, st.Total, p.reset)

	fmt.Fprintf(w, "\n  %sBy Status:%s\n", p.bold, p.reset)
	for _, name := range slices.Sorted(maps.Keys(st.ByStatus)) {
		n := st.ByStatus[name]
		bar := strings.Repeat("█", min(n, maxBarWidth))
		fmt.Fprintf(w, "    %s%-14s%s %4d  %s\n", p.histogram(name), name, p.reset, n, bar)
	}

	fmt.Fprintf(w, "\n  %sBy Priority:%s\n", p.bold, p.reset)
	for _, name := range slices.Sorted(maps.Keys(st.ByPriority)) {
		fmt.Fprintf(w, "    %-14s %4d\n", name, st.ByPriority[name])
	}

	if st.Overdue > 0 {
		fmt.Fprintf(w, "\n  %s⚠  Overdue tasks: %d%s\n", p.overdue, st.Overdue, p.reset)
	}
	fmt.Fprintln(w)
}

func renderDetail(w io.Writer, p palette, t task.Task, today task.Date) {
	deadline := "-"
	if !t.Deadline.IsZero() {
		deadline = t.Deadline.String()
		if t.IsOverdue(today) {
			deadline += "  " + p.overdue + "(overdue)" + p.reset
		}
	}
	tags := "-"
	if len(t.Tags) > 0 {
		tags = strings.Join(t.Tags, ", ")
	}

	fmt.Fprintf(w, "%sTask #%d: %s%s\n", p.bold, t.ID, t.Title, p.reset)
	fmt.Fprintf(w, "  Priority    : %s%s%s\n", p.priority[t.Priority], t.Priority, p.reset)
	fmt.Fprintf(w, "  Status      : %s%s%s\n", p.status[t.Status], t.Status, p.reset)
	fmt.Fprintf(w, "  Deadline    : %s\n", deadline)
	fmt.Fprintf(w, "  Tags        : %s\n", tags)
	if t.Description != "" {
		fmt.Fprintf(w, "  Description : %s\n", t.Description)
	}
	if t.Notes != "" {
		fmt.Fprintf(w, "  Notes       : %s\n", t.Notes)
	}
	fmt.Fprintf(w, "  Created     : %s\n", task.FormatTimestamp(t.CreatedAt))
	fmt.Fprintf(w, "  Updated     : %s\n", task.FormatTimestamp(t.UpdatedAt))
}
