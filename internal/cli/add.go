package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/taskman/internal/task"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Description string
	Priority    string
	Deadline    string
	Tags        string
	Notes       string
}

// AddResult is the JSON payload of the add command.
type AddResult struct {
	Task    task.Record `json:"task"`
	Overdue bool        `json:"overdue"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a task",
		Long: `Create a pending task.

The priority defaults to the configured default_priority (medium unless
changed). Tags are comma-separated; surrounding spaces are trimmed.`,
		Example: `  taskman add "Write report" -p high --deadline 2026-04-01 --tags work,q2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "deadline date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")

	return cmd
}

// SplitTags splits a comma-separated tag list, trimming each tag and
// dropping empty ones.
func SplitTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func runAdd(cmd *cobra.Command, opts *AddOptions, title string) error {
	formatter := opts.newFormatter(cmd)

	if strings.TrimSpace(title) == "" {
		return formatter.Fail("invalid title", errors.New("title must not be empty"))
	}

	n := task.New{
		Title:       title,
		Description: opts.Description,
		Tags:        SplitTags(opts.Tags),
		Notes:       opts.Notes,
	}
	if opts.Priority != "" {
		p, err := task.ParsePriority(opts.Priority)
		if err != nil {
			return formatter.Fail("invalid --priority", err)
		}
		n.Priority = p
	}
	deadline, err := task.ParseDate(opts.Deadline)
	if err != nil {
		return formatter.Fail("invalid --deadline", err)
	}
	n.Deadline = deadline

	sess, err := openSession(opts.RootOptions, formatter)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer sess.Close()

	if n.Priority == "" {
		n.Priority = sess.cfg.DefaultPriority
	}

	t, err := sess.engine.Add(cmd.Context(), n)
	if err != nil {
		return formatter.Fail("failed to add task", err)
	}
	sess.log.Debug("task created", "id", t.ID, "priority", t.Priority)

	overdue := t.IsOverdue(sess.engine.Today())
	if formatter.JSON() {
		return formatter.Success(AddResult{Task: t.Record(), Overdue: overdue})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created task #%d: %s\n", t.ID, t.Title)
	if !t.Deadline.IsZero() {
		suffix := ""
		if overdue {
			suffix = "  (already overdue!)"
		}
		fmt.Fprintf(out, "  Deadline: %s%s\n", t.Deadline, suffix)
	}
	return nil
}
