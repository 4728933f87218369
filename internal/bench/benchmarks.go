package bench

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/VeldsparCrypto/SWSQLite/internal/bench/benchbar"
	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  int
	TotalWrites int64
}

type benchmark func(t target, conf Config, out io.Writer) (benchmarkResult, error)

func insertRows(t target, out io.Writer, rows int, avatar []byte) (int64, error) {
	bar := benchbar.NewBar(out, fmt.Sprintf("Inserting %d rows", rows), rows)
	defer bar.Finish()

	var written int64
	for idx := 0; idx < rows; idx++ {
		affected, err := t.exec(
			insertPerson,
			engine.UUIDToken, engine.ClusterTimeToken,
			fmt.Sprintf("user%d@example.com", idx), idx%100, float64(idx)/3, avatar,
		)
		if err != nil {
			return written, fmt.Errorf("error when inserting: %w", err)
		}

		written += affected
		bar.Inc()
	}

	return written, nil
}

// runBenchmarkSimple inserts X rows one statement at a time and then reads
// all of them in a single query.
func runBenchmarkSimple(t target, conf Config, out io.Writer) (benchmarkResult, error) {
	start := time.Now()

	written, err := insertRows(t, out, conf.Rows, []byte{})
	if err != nil {
		return benchmarkResult{}, err
	}

	read, err := t.query(selectPeople)
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}

	return benchmarkResult{
		Name:        "Simple",
		Duration:    time.Since(start),
		TotalReads:  read,
		TotalWrites: written,
	}, nil
}

// runBenchmarkMany inserts X rows in a single transaction and then reads
// all of them Y times. This simulates a read-heavy workload.
func runBenchmarkMany(t target, conf Config, out io.Writer) (benchmarkResult, error) {
	start := time.Now()

	if _, err := t.exec("BEGIN"); err != nil {
		return benchmarkResult{}, err
	}
	written, err := insertRows(t, out, conf.BatchRows, nil)
	if err != nil {
		_, _ = t.exec("ROLLBACK")
		return benchmarkResult{}, err
	}
	if _, err := t.exec("COMMIT"); err != nil {
		return benchmarkResult{}, err
	}

	bar := benchbar.NewBar(out, fmt.Sprintf("Reading all rows %d times", conf.Reads), conf.Reads)
	defer bar.Finish()

	totalReads := 0
	for i := 0; i < conf.Reads; i++ {
		read, err := t.query(selectPeople)
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
		}
		totalReads += read
		bar.Inc()
	}

	return benchmarkResult{
		Name:        "Many",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: written,
	}, nil
}

// runBenchmarkLarge inserts X rows with a Y bytes blob each and then reads
// all of them in a single query.
func runBenchmarkLarge(t target, conf Config, out io.Writer) (benchmarkResult, error) {
	start := time.Now()

	written, err := insertRows(t, out, conf.LargeRows, bytes.Repeat([]byte{'Y'}, conf.BlobBytes))
	if err != nil {
		return benchmarkResult{}, err
	}

	read, err := t.query(selectPeople)
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}

	return benchmarkResult{
		Name:        "Large",
		Duration:    time.Since(start),
		TotalReads:  read,
		TotalWrites: written,
	}, nil
}

// runBenchmarks executes all benchmarks, and returns results.
//
// It recreates the schema before each benchmark.
func runBenchmarks(t target, conf Config, out io.Writer) ([]benchmarkResult, error) {
	benchs := []benchmark{
		runBenchmarkSimple,
		runBenchmarkMany,
		runBenchmarkLarge,
	}

	var results []benchmarkResult

	for _, bench := range benchs {
		if err := recreateSchema(t); err != nil {
			return nil, err
		}

		res, err := bench(t, conf, out)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}
