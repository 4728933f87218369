// Package engine is the typed façade over one SQLite database file. It binds
// value.Value parameters into prepared statements and decodes result rows
// back into Records.
//
// An Engine is not safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/VeldsparCrypto/SWSQLite/internal/action"
	"github.com/VeldsparCrypto/SWSQLite/internal/ident"
	"github.com/VeldsparCrypto/SWSQLite/internal/log"
	"github.com/VeldsparCrypto/SWSQLite/internal/sqlitec"
	"github.com/VeldsparCrypto/SWSQLite/internal/value"
	"github.com/hashicorp/go-multierror"
)

const logNamespace = "engine"

// OptimizationQueries are the pragmas the CLI and the benchmark run after
// opening a database unless optimizations are disabled.
var OptimizationQueries = []string{
	"PRAGMA JOURNAL_MODE = WAL;",
	"PRAGMA BUSY_TIMEOUT = 5000;",
	"PRAGMA SYNCHRONOUS = NORMAL;",
	"PRAGMA CACHE_SIZE = 10000;",
	"PRAGMA FOREIGN_KEYS = true;",
	"PRAGMA TEMP_STORE = MEMORY;",
}

// Option configures an Engine opened with Open.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithGenerator replaces the generator of the substituted identifiers.
func WithGenerator(ids IDGenerator) Option {
	return func(e *Engine) {
		e.binder.IDs = ids
	}
}

// WithPostOpenQueries sets queries run once right after the database is
// opened, e.g. pragmas.
func WithPostOpenQueries(queries []string) Option {
	return func(e *Engine) {
		e.postOpenQueries = queries
	}
}

// Engine owns one SQLite connection.
type Engine struct {
	path            string
	conn            *sqlitec.Conn
	logger          log.Logger
	binder          Binder
	postOpenQueries []string
}

// Open opens the database at path, creating the file if needed.
//
// The directory containing the file is created when missing, but not its
// parents. ":memory:" and "file:" URIs are passed to SQLite untouched.
func Open(path string, options ...Option) (*Engine, error) {
	e := &Engine{
		path:   path,
		logger: log.Discard(),
		binder: Binder{IDs: ident.NewGenerator()},
	}

	for _, option := range options {
		option(e)
	}
	if !e.logger.IsInitialized() {
		e.logger = log.Discard()
	}

	if err := ensureDirectory(path); err != nil {
		return nil, err
	}

	conn, err := sqlitec.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}

	for _, query := range e.postOpenQueries {
		if err := conn.Exec(query); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to run post open query %q: %w", query, err)
		}
	}

	e.conn = conn
	e.logger.DebugNs(logNamespace, "database opened", log.KV{"path": path})

	return e, nil
}

// MustOpen is like Open but panics if the database can't be opened.
func MustOpen(path string, options ...Option) *Engine {
	e, err := Open(path, options...)
	if err != nil {
		panic(err)
	}
	return e
}

func ensureDirectory(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}

	if err := os.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("failed to create database directory %q: %w", dir, err)
	}

	return nil
}

// Path returns the path the Engine was opened with.
func (e *Engine) Path() string {
	return e.path
}

// Close releases the connection. Closing twice is a no-op.
func (e *Engine) Close() error {
	if e.conn.IsClosed() {
		return nil
	}
	if err := e.conn.Close(); err != nil {
		return err
	}

	e.logger.DebugNs(logNamespace, "database closed", log.KV{"path": e.path})
	return nil
}

// Execute runs a statement that returns no rows.
//
// With silenceErrors a failed statement yields an empty successful Result;
// the failure is only logged at debug level. Use after Close is always
// reported.
func (e *Engine) Execute(sql string, params []value.Value, silenceErrors bool) Result {
	start := time.Now()

	err := e.execute(sql, params)
	if err != nil {
		if silenceErrors && !errors.Is(err, ErrClosed) {
			e.logger.DebugNs(logNamespace, "silenced statement failure", log.KV{
				"sql":   sql,
				"error": err.Error(),
			})
			return Result{Duration: time.Since(start)}
		}
		return Result{Err: err, Duration: time.Since(start)}
	}

	return Result{
		RowsAffected: e.conn.RowsAffected(),
		LastInsertID: e.conn.LastInsertRowID(),
		Duration:     time.Since(start),
	}
}

// ExecuteActions runs the statements of actions in order.
//
// Failures meaning the action was already applied ("already exists",
// "duplicate column name") are ignored, so applying the same actions again is
// a no-op. Other failures don't stop the remaining actions; they are all
// returned together in Result.Err.
func (e *Engine) ExecuteActions(actions ...action.Action) Result {
	start := time.Now()
	var errs *multierror.Error

	for _, a := range actions {
		err := e.execute(a.Statement(), nil)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrClosed) {
			errs = multierror.Append(errs, err)
			break
		}
		if isAlreadyApplied(err) {
			e.logger.DebugNs(logNamespace, "action already applied", log.KV{
				"action": a.String(),
			})
			continue
		}
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", a.Kind().Value, err))
	}

	return Result{Err: errs.ErrorOrNil(), Duration: time.Since(start)}
}

// Query runs a statement and returns one Record per row. Errors are never
// silenced.
func (e *Engine) Query(sql string, params []value.Value) Result {
	start := time.Now()

	records, err := e.query(sql, params)
	if err != nil {
		return Result{Err: err, Duration: time.Since(start)}
	}

	return Result{Records: records, Duration: time.Since(start)}
}

func (e *Engine) prepare(sql string, params []value.Value) (*sqlitec.Stmt, error) {
	if e.conn.IsClosed() {
		return nil, ErrClosed
	}

	e.logger.DebugNs(logNamespace, "running statement", log.KV{
		"sql":    sql,
		"params": len(params),
	})

	stmt, err := e.conn.Prepare(sql)
	if err != nil {
		return nil, err
	}

	if err := e.binder.Bind(stmt, params); err != nil {
		_ = stmt.Finalize()
		return nil, err
	}

	return stmt, nil
}

func (e *Engine) execute(sql string, params []value.Value) error {
	stmt, err := e.prepare(sql, params)
	if err != nil {
		return err
	}
	defer stmt.Finalize()

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return err
		}
		if !hasRow {
			return nil
		}
	}
}

func (e *Engine) query(sql string, params []value.Value) ([]Record, error) {
	stmt, err := e.prepare(sql, params)
	if err != nil {
		return nil, err
	}
	defer stmt.Finalize()

	records := []Record{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			return records, nil
		}
		records = append(records, DecodeRow(stmt))
	}
}

func isAlreadyApplied(err error) bool {
	msg := err.Error()

	var sqliteErr *sqlitec.Error
	if errors.As(err, &sqliteErr) {
		msg = sqliteErr.Msg
	}

	return strings.Contains(msg, "duplicate column name") ||
		strings.Contains(msg, "already exists")
}
