package bench

import (
	"database/sql"

	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
	"github.com/VeldsparCrypto/SWSQLite/internal/value"
)

// target is a database under benchmark.
type target interface {
	// exec runs a statement and returns the rows it changed.
	exec(query string, args ...any) (int64, error)
	// query runs a statement, reads every column of every row and returns
	// the number of rows.
	query(query string, args ...any) (int, error)
	close() error
}

// engineTarget benchmarks the Engine, tokens are replaced by its binder.
type engineTarget struct {
	eng *engine.Engine
}

func (t engineTarget) exec(query string, args ...any) (int64, error) {
	res := t.eng.Execute(query, value.Values(args...), false)
	return res.RowsAffected, res.Err
}

func (t engineTarget) query(query string, args ...any) (int, error) {
	res := t.eng.Query(query, value.Values(args...))
	return len(res.Records), res.Err
}

func (t engineTarget) close() error {
	return t.eng.Close()
}

// sqlTarget benchmarks a database/sql pool. database/sql knows nothing about
// the tokens, so they are replaced here with the same generator kind the
// Engine uses.
type sqlTarget struct {
	db  *sql.DB
	ids engine.IDGenerator
}

func (t sqlTarget) substitute(args []any) []any {
	res := make([]any, len(args))
	for i, arg := range args {
		switch arg {
		case engine.UUIDToken:
			res[i] = t.ids.UUID()
		case engine.ClusterTimeToken:
			res[i] = t.ids.ClusterTime()
		default:
			res[i] = arg
		}
	}
	return res
}

func (t sqlTarget) exec(query string, args ...any) (int64, error) {
	res, err := t.db.Exec(query, t.substitute(args)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t sqlTarget) query(query string, args ...any) (int, error) {
	rows, err := t.db.Query(query, t.substitute(args)...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return 0, err
		}
		count++
	}

	return count, rows.Err()
}

func (t sqlTarget) close() error {
	return t.db.Close()
}
