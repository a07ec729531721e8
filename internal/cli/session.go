package cli

import (
	"fmt"
	"log/slog"

	"github.com/roach88/taskman/internal/config"
	"github.com/roach88/taskman/internal/engine"
	"github.com/roach88/taskman/internal/store"
)

// session is one command's view of the database: resolved config, an open
// store and the engine over it. Close it when the command finishes.
type session struct {
	cfg    config.Config
	store  *store.Store
	engine *engine.Engine
	log    *slog.Logger
}

// openSession resolves configuration and opens the database, creating its
// directory and schema if needed. With --verbose the database path is
// reported through formatter.
func openSession(opts *RootOptions, formatter *OutputFormatter) (*session, error) {
	cfg, err := opts.resolveConfig()
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDBDir(); err != nil {
		return nil, err
	}

	formatter.VerboseLog("Opening database %s", cfg.DBPath)
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}

	return &session{
		cfg:    cfg,
		store:  st,
		engine: engine.New(st, opts.Clock),
		log:    opts.log(),
	}, nil
}

// Close closes the database, logging rather than returning a failure: the
// command's own result has already been printed.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Error("error closing database", "error", err)
	}
}
