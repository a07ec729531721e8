// Package config resolves where taskman keeps its data and which defaults it
// applies. The result is a plain Config value passed explicitly to the
// command surface; there is no package-level state.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/taskman/internal/task"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	appDir           = ".taskman"
	dbFile           = "task-manager.db"
	configFile       = "config.yaml"
	defaultExportOut = "tasks_export.json"
)

// Config holds every setting the command surface needs.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`

	// ExportPath is the default destination of the export command,
	// relative to the working directory unless absolute.
	ExportPath string `yaml:"export_path"`

	// DefaultPriority applies to `add` when --priority is not given.
	DefaultPriority task.Priority `yaml:"default_priority"`

	// Color is one of ColorAuto, ColorAlways or ColorNever.
	Color string `yaml:"color"`
}

// defaultFor returns the built-in configuration for a user whose home
// directory is home.
func defaultFor(home string) Config {
	return Config{
		DBPath:          filepath.Join(home, appDir, dbFile),
		ExportPath:      defaultExportOut,
		DefaultPriority: task.DefaultPriority,
		Color:           ColorAuto,
	}
}

// Default returns the built-in configuration for the invoking user.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return defaultFor(home), nil
}

// DefaultFile returns the config file location for the invoking user.
func DefaultFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return defaultPath(home), nil
}

func defaultPath(home string) string {
	return filepath.Join(home, appDir, configFile)
}

// Load overlays the YAML file at path onto base. A missing or empty file
// returns base unchanged. Unknown keys and values outside the schema are
// errors.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if len(raw) == 0 {
		return base, nil
	}
	if err := validate(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	// Strict decode catches typos like "db-path" that the schema would
	// also reject, with a line number.
	var file Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return merge(base, file), nil
}

// merge returns base with every non-empty field of over applied.
func merge(base, over Config) Config {
	if over.DBPath != "" {
		base.DBPath = over.DBPath
	}
	if over.ExportPath != "" {
		base.ExportPath = over.ExportPath
	}
	if over.DefaultPriority != "" {
		base.DefaultPriority = over.DefaultPriority
	}
	if over.Color != "" {
		base.Color = over.Color
	}
	return base
}

// EnsureDBDir creates the directory holding the database file.
func (c Config) EnsureDBDir() error {
	dir := filepath.Dir(c.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}
