package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, rootOpts, args[0])
		},
	}
}

func runDelete(cmd *cobra.Command, opts *RootOptions, idArg string) error {
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

	found, err := sess.engine.Delete(cmd.Context(), id)
	if err != nil {
		return formatter.Fail("failed to delete task", err)
	}

	if formatter.JSON() {
		return formatter.Success(ChangeResult{ID: id, Found: found})
	}
	if !found {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ Task #%d not found\n", id)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted task #%d\n", id)
	return nil
}
