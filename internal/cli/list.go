package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/taskman/internal/store"
	"github.com/roach88/taskman/internal/task"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Status   string
	Priority string
	Search   string
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Count int           `json:"count"`
	Tasks []task.Record `json:"tasks"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, most urgent first",
		Long: `List tasks ordered by priority, then deadline (none last), then creation time.

Filters combine: only tasks matching every supplied filter are shown.
--search matches the title or description, case-sensitively.`,
		Example: `  taskman list
  taskman list --filter-status pending --filter-priority high
  taskman list --search report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "filter-status", "", "only tasks with this status")
	cmd.Flags().StringVar(&opts.Priority, "filter-priority", "", "only tasks with this priority")
	cmd.Flags().StringVar(&opts.Search, "search", "", "only tasks whose title or description contains this text")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	formatter := opts.newFormatter(cmd)

	var filter store.Filter
	if opts.Status != "" {
		s, err := task.ParseStatus(opts.Status)
		if err != nil {
			return formatter.Fail("invalid --filter-status", err)
		}
		filter.Status = s
	}
	if opts.Priority != "" {
		p, err := task.ParsePriority(opts.Priority)
		if err != nil {
			return formatter.Fail("invalid --filter-priority", err)
		}
		filter.Priority = p
	}
	filter.Search = opts.Search

	sess, err := openSession(opts.RootOptions, formatter)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer sess.Close()

	tasks, err := sess.engine.List(cmd.Context(), filter)
	if err != nil {
		return formatter.Fail("failed to list tasks", err)
	}
	sess.log.Debug("listed tasks", "count", len(tasks))

	if formatter.JSON() {
		records := make([]task.Record, len(tasks))
		for i, t := range tasks {
			records[i] = t.Record()
		}
		return formatter.Success(ListResult{Count: len(tasks), Tasks: records})
	}

	p := newPalette(colorEnabled(sess.cfg.Color, cmd.OutOrStdout()))
	renderList(cmd.OutOrStdout(), p, tasks, sess.engine.Today())
	return nil
}
