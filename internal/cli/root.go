package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/taskman/internal/config"
	"github.com/roach88/taskman/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string // overrides config db_path
	ConfigPath string // defaults to ~/.taskman/config.yaml
	Color      string // overrides config color

	// Clock allows overriding the engine clock (for testing).
	// If nil, defaults to engine.SystemClock.
	Clock engine.Clock

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs RunIDGenerator

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidColors defines the allowed --color values.
var ValidColors = []string{config.ColorAuto, config.ColorAlways, config.ColorNever}

// NewRootCommand creates the root command for the taskman CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts. Tests use
// it to inject a Clock and RunIDs; flag values are written into opts.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskman",
		Short: "taskman - personal task tracking",
		Long: `Track tasks with priorities, deadlines and tags in a local SQLite database.

Tasks are listed most urgent first, then by deadline (tasks without one
last), then by creation time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Color != "" && !slices.Contains(ValidColors, opts.Color) {
				return fmt.Errorf("invalid color %q: must be one of %v", opts.Color, ValidColors)
			}
			opts.setupLogging(cmd)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default ~/.taskman/task-manager.db)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ~/.taskman/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "", "colorize output (auto|always|never)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// setupLogging installs a text slog handler on stderr. Every record carries
// the invocation's run ID.
func (o *RootOptions) setupLogging(cmd *cobra.Command) {
	logLevel := slog.LevelWarn
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})

	gen := o.RunIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	o.logger = slog.New(handler).With("run_id", gen.Generate())
	slog.SetDefault(o.logger)
}

func (o *RootOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}

// resolveConfig builds the effective configuration: built-in defaults, then
// the config file, then command-line overrides.
func (o *RootOptions) resolveConfig() (config.Config, error) {
	base, err := config.Default()
	if err != nil {
		return config.Config{}, err
	}

	path := o.ConfigPath
	if path == "" {
		if path, err = config.DefaultFile(); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path, base)
	if err != nil {
		return config.Config{}, err
	}
	o.log().Debug("config loaded", "path", path)

	if o.Database != "" {
		cfg.DBPath = o.Database
	}
	if o.Color != "" {
		cfg.Color = o.Color
	}
	return cfg, nil
}

// newFormatter creates the OutputFormatter for cmd.
func (o *RootOptions) newFormatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}
