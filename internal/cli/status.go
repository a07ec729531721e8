package cli

import (
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize tasks by status and priority",
		Long: `Show the total number of tasks, a histogram per status and per priority,
and how many open tasks are past their deadline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, rootOpts)
		},
	}
}

func runStatus(cmd *cobra.Command, opts *RootOptions) error {
	formatter := opts.newFormatter(cmd)

	sess, err := openSession(opts, formatter)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer sess.Close()

	st, err := sess.engine.Stats(cmd.Context())
	if err != nil {
		return formatter.Fail("failed to compute status", err)
	}

	if formatter.JSON() {
		return formatter.Success(st)
	}

	p := newPalette(colorEnabled(sess.cfg.Color, cmd.OutOrStdout()))
	renderStats(cmd.OutOrStdout(), p, st)
	return nil
}
