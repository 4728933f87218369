package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/VeldsparCrypto/SWSQLite/internal/version"
	"github.com/alexflint/go-arg"
)

// Config represents the configuration for swsqlite.
type Config struct {
	Database             string `arg:"positional,required" help:"Path of the SQLite database file, created when missing (use :memory: for a temporary database)"`
	Schema               string `arg:"--schema,env:SWSQLITE_SCHEMA" help:"YAML schema file applied after opening the database"`
	Execute              string `arg:"-e,--execute" help:"Run a single statement, print its result and exit"`
	DisableOptimizations bool   `arg:"--disable-optimizations,env:SWSQLITE_DISABLE_OPTIMIZATIONS" help:"Disable the performance pragmas run after opening the database, allowing manual tuning" default:"false"`
	Debug                bool   `arg:"--debug,env:SWSQLITE_DEBUG" help:"Log every statement to stderr" default:"false"`
	HistoryFile          string `arg:"--history-file,env:SWSQLITE_HISTORY_FILE" help:"File keeping the shell history (defaults to .swsqlite_history in the temporary directory)"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.ShellVersion())
}

// LogLevel returns the level of the engine logger.
func (c Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := validateDatabase(cfg.Database); err != nil {
		log.Fatal(err)
	}

	if err := validateSchema(cfg.Schema); err != nil {
		log.Fatal(err)
	}

	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(os.TempDir(), ".swsqlite_history")
	}

	return cfg
}

// validateDatabase checks that path can name a database file.
func validateDatabase(path string) error {
	if path == "" {
		return errors.New("database path is required")
	}
	if path == ":memory:" {
		return nil
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("invalid database path, %s is a directory", path)
	}
	return nil
}

// validateSchema checks that the schema file, when given, is readable.
func validateSchema(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid schema file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("invalid schema file, %s is a directory", path)
	}
	return nil
}
