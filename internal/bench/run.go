// Package bench compares the Engine with mattn/go-sqlite3 used through
// database/sql on the same workloads.
package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/VeldsparCrypto/SWSQLite/internal/cli/styled"
	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
	"github.com/VeldsparCrypto/SWSQLite/internal/ident"
	"github.com/VeldsparCrypto/SWSQLite/internal/util/numutil"
	"github.com/VeldsparCrypto/SWSQLite/internal/version"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes benchmarks for the Engine and mattn/go-sqlite3 and prints the
// results.
func Run(ctx context.Context) error {
	conf := MustParse(os.Args)
	fmt.Println(version.BenchVersion())

	dir := conf.Directory
	if dir == "" {
		tmpDir, err := os.MkdirTemp("", "swsqlitebench_*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmpDir)
		dir = tmpDir
	}

	return runAll(ctx, conf, dir, os.Stdout, os.Stderr)
}

// runAll benchmarks every target in turn. Results go to out and progress bars
// to progress.
func runAll(ctx context.Context, conf Config, dir string, out io.Writer, progress io.Writer) error {
	var postOpenQueries []string
	if !conf.DisableOptimizations {
		postOpenQueries = engine.OptimizationQueries
	}

	openers := []struct {
		name string
		open func() (target, error)
	}{
		{
			name: "swsqlite engine",
			open: func() (target, error) {
				eng, err := engine.Open(
					filepath.Join(dir, "engine", "bench.db"),
					engine.WithPostOpenQueries(postOpenQueries),
				)
				if err != nil {
					return nil, err
				}
				return engineTarget{eng: eng}, nil
			},
		},
		{
			name: "mattn/go-sqlite3",
			open: func() (target, error) {
				dbPath := filepath.Join(dir, "mattn", "bench.db")
				if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
					return nil, err
				}
				db, err := openMattn(dbPath, postOpenQueries)
				if err != nil {
					return nil, err
				}
				return sqlTarget{db: db, ids: ident.NewGenerator()}, nil
			},
		},
	}

	for _, opener := range openers {
		if err := ctx.Err(); err != nil {
			return err
		}

		t, err := opener.open()
		if err != nil {
			return fmt.Errorf("error opening %s db: %w", opener.name, err)
		}

		fmt.Fprintf(out, "\n--- Benchmarks for %s ---\n", opener.name)
		results, err := runBenchmarks(t, conf, progress)
		closeErr := t.close()
		if err != nil {
			return fmt.Errorf("error benchmarking %s: %w", opener.name, err)
		}
		if closeErr != nil {
			return fmt.Errorf("error closing %s db: %w", opener.name, closeErr)
		}

		printResults(out, results)
	}

	return nil
}

func printResults(out io.Writer, results []benchmarkResult) {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Name,
			numutil.WithCommas(r.TotalReads),
			numutil.WithCommas(r.TotalWrites),
			r.Duration,
		})
	}

	fmt.Fprintln(out, tw.Render())
}
