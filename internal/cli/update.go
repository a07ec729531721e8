package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/taskman/internal/task"
)

// ChangeResult is the JSON payload of update and delete.
type ChangeResult struct {
	ID     int64  `json:"id"`
	Found  bool   `json:"found"`
	Status string `json:"status,omitempty"`
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID STATUS",
		Short: "Change a task's status",
		Long: `Set the status of a task (pending, in_progress, done, cancelled).

Any transition is allowed. An unknown ID is reported but is not an error.`,
		Example: `  taskman update 3 in_progress
  taskman update 3 done`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, rootOpts, args[0], args[1])
		},
	}
}

// parseTaskID parses a command-line task ID.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be an integer", arg)
	}
	return id, nil
}

func runUpdate(cmd *cobra.Command, opts *RootOptions, idArg, statusArg string) error {
	formatter := opts.newFormatter(cmd)

	id, err := parseTaskID(idArg)
	if err != nil {
		return formatter.Fail("invalid ID", err)
	}
	status, err := task.ParseStatus(statusArg)
	if err != nil {
		return formatter.Fail("invalid STATUS", err)
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer sess.Close()

	found, err := sess.engine.UpdateStatus(cmd.Context(), id, status)
	if err != nil {
		return formatter.Fail("failed to update task", err)
	}
	sess.log.Debug("status update", "id", id, "status", status, "found", found)

	if formatter.JSON() {
		res := ChangeResult{ID: id, Found: found}
		if found {
			res.Status = string(status)
		}
		return formatter.Success(res)
	}

	if !found {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ Task #%d not found\n", id)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Task #%d status → %s\n", id, status)
	return nil
}
