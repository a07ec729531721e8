package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/taskman/internal/task"
)

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Found   bool         `json:"found"`
	Overdue bool         `json:"overdue"`
	Task    *task.Record `json:"task"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootOpts, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, opts *RootOptions, idArg string) error {
	formatter := opts.newFormatter(cmd)

	id, err := parseTaskID(idArg)
	if err != nil {
		return formatter.Fail("invalid ID", err)
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer sess.Close()

	t, found, err := sess.engine.Get(cmd.Context(), id)
	if err != nil {
		return formatter.Fail("failed to load task", err)
	}
	today := sess.engine.Today()

	if formatter.JSON() {
		res := ShowResult{Found: found}
		if found {
			rec := t.Record()
			res.Task = &rec
			res.Overdue = t.IsOverdue(today)
		}
		return formatter.Success(res)
	}

	if !found {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ Task #%d not found\n", id)
		return nil
	}
	p := newPalette(colorEnabled(sess.cfg.Color, cmd.OutOrStdout()))
	renderDetail(cmd.OutOrStdout(), p, t, today)
	return nil
}
