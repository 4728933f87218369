// Package cli runs the swsqlite shell.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/VeldsparCrypto/SWSQLite/internal/cli/config"
	"github.com/VeldsparCrypto/SWSQLite/internal/cli/repl"
	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
	"github.com/VeldsparCrypto/SWSQLite/internal/log"
	"github.com/VeldsparCrypto/SWSQLite/internal/schema"
	"github.com/VeldsparCrypto/SWSQLite/internal/version"
)

// Run runs the swsqlite CLI.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := OpenEngine(conf, log.NewLogger(os.Stderr, conf.LogLevel()))
	if err != nil {
		return err
	}
	defer eng.Close()

	rp := repl.NewRepl(ctx, stop, eng, os.Stdout, conf.HistoryFile)

	if conf.Execute != "" {
		rp.Dispatch(conf.Execute)
		return nil
	}

	fmt.Println(version.ShellVersion())

	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}

// OpenEngine opens the configured database and applies the schema file.
func OpenEngine(conf config.Config, logger log.Logger) (*engine.Engine, error) {
	options := []engine.Option{engine.WithLogger(logger)}
	if !conf.DisableOptimizations {
		options = append(options, engine.WithPostOpenQueries(engine.OptimizationQueries))
	}

	eng, err := engine.Open(conf.Database, options...)
	if err != nil {
		return nil, err
	}

	if conf.Schema != "" {
		if err := applySchema(eng, conf.Schema); err != nil {
			_ = eng.Close()
			return nil, err
		}
	}

	return eng, nil
}

func applySchema(eng *engine.Engine, path string) error {
	s, err := schema.Load(path)
	if err != nil {
		return err
	}

	actions := s.Actions()
	if res := eng.ExecuteActions(actions...); res.Err != nil {
		return fmt.Errorf("failed to apply schema %s: %w", path, res.Err)
	}

	return nil
}
