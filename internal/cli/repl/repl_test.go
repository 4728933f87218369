package repl

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepl(t *testing.T) (*Repl, *bytes.Buffer) {
	t.Helper()

	eng, err := engine.Open(filepath.Join(t.TempDir(), "repl.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = eng.Close()
	})

	ctx, stop := context.WithCancel(context.Background())
	t.Cleanup(stop)

	out := &bytes.Buffer{}
	r := NewRepl(ctx, stop, eng, out, filepath.Join(t.TempDir(), "history"))
	return &r, out
}

// run dispatches input and returns what it printed.
func run(t *testing.T, r *Repl, out *bytes.Buffer, input string) string {
	t.Helper()

	out.Reset()
	assert.False(t, r.Dispatch(input))
	return out.String()
}

func TestDispatch(t *testing.T) {
	r, out := newTestRepl(t)

	assert.Contains(t, run(t, r, out, ".load testdata/schema.yml"), "Applied 4 schema actions")

	output := run(t, r, out, "INSERT INTO people (_id_, _timestamp_, name, age) VALUES ('%uuid%', '%clustertime%', 'Alice', 30)")
	assert.Contains(t, output, "Rows Affected")
	assert.Contains(t, output, "OK")

	output = run(t, r, out, "SELECT name, age FROM people")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "30")
	assert.Contains(t, output, "1 rows")

	assert.Contains(t, run(t, r, out, ".tables"), "people")
	assert.Contains(t, run(t, r, out, ".indexes"), "idx_people_age")
	assert.Contains(t, run(t, r, out, ".schema"), "CREATE TABLE IF NOT EXISTS people")

	output = run(t, r, out, ".columns people")
	assert.Contains(t, output, "_timestamp_")
	assert.Contains(t, output, "INTEGER")

	assert.Contains(t, run(t, r, out, ".count people"), "1")
	assert.Contains(t, run(t, r, out, ".help"), "Available commands:")
	assert.Contains(t, run(t, r, out, "SELECT * FROM people WHERE age > 100"), "No rows")
	assert.Contains(t, run(t, r, out, ".nope"), "Unknown command")
	assert.Empty(t, run(t, r, out, "   "))
}

func TestDispatchIdentifiers(t *testing.T) {
	r, out := newTestRepl(t)
	shape := regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	assert.Regexp(t, shape, run(t, r, out, ".uuid"))
	assert.Regexp(t, shape, run(t, r, out, ".clustertime"))
}

func TestDispatchErrors(t *testing.T) {
	r, out := newTestRepl(t)

	output := run(t, r, out, "SELEC 1")
	assert.Contains(t, output, "Error")
	assert.Contains(t, output, "syntax error")
	assert.NotContains(t, output, "failed to prepare statement")

	assert.Contains(t, run(t, r, out, ".count"), "missing table name")
	assert.Contains(t, run(t, r, out, ".columns"), "missing table name")
	assert.Contains(t, run(t, r, out, ".count missing"), "no such table")
	assert.Contains(t, run(t, r, out, ".load testdata/missing.yml"), "can't read schema")
}

func TestDispatchQuit(t *testing.T) {
	r, _ := newTestRepl(t)

	for _, input := range []string{".quit", ".exit", "exit"} {
		assert.True(t, r.Dispatch(input), input)
	}
}

func TestIsReadQuery(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "SELECT 1", want: true},
		{input: "  select * from t", want: true},
		{input: "WITH x AS (SELECT 1) SELECT * FROM x", want: true},
		{input: "PRAGMA journal_mode", want: true},
		{input: "INSERT INTO t VALUES (1)", want: false},
		{input: "CREATE TABLE t (a)", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, isReadQuery(tt.input))
		})
	}
}

func TestCompleter(t *testing.T) {
	assert.Equal(t, []string{".clear", ".clustertime", ".columns", ".count"}, filterDot(cmdHelpCompleter(".c")))
	assert.Contains(t, cmdHelpCompleter("sel"), "SELECT * FROM ")
	assert.Empty(t, cmdHelpCompleter("zzz"))
}

func filterDot(items []string) []string {
	res := []string{}
	for _, item := range items {
		if len(item) > 0 && item[0] == '.' {
			res = append(res, item)
		}
	}
	return res
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"people"`, quoteIdent("people"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
