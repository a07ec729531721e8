package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Count int    `json:"count"`
	Path  string `json:"path"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to a JSON file",
		Long: `Write every task, in list order, to a JSON array file.

The destination defaults to the configured export_path (tasks_export.json
in the current directory unless changed). An existing file is overwritten.`,
		Example: `  taskman export
  taskman export -o backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default from config: tasks_export.json)")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	formatter := opts.newFormatter(cmd)

	sess, err := openSession(opts.RootOptions, formatter)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer sess.Close()

	path := opts.Output
	if path == "" {
		path = sess.cfg.ExportPath
	}

	count, err := sess.engine.ExportFile(cmd.Context(), path)
	if err != nil {
		return formatter.Fail("failed to export tasks", err)
	}
	sess.log.Debug("export written", "path", path, "count", count)

	if formatter.JSON() {
		return formatter.Success(ExportResult{Count: count, Path: path})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d tasks → %s\n", count, path)
	return nil
}
