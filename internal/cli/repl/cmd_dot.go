package repl

import (
	"fmt"
	"strings"

	"github.com/VeldsparCrypto/SWSQLite/internal/schema"
	"github.com/VeldsparCrypto/SWSQLite/internal/value"
)

func cmdTables(r *Repl) {
	cmdQuery(r, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
}

func cmdIndexes(r *Repl) {
	cmdQuery(r, `SELECT name, tbl_name AS "table" FROM sqlite_master WHERE type = 'index' ORDER BY name`)
}

func cmdSchema(r *Repl) {
	cmdQuery(r, "SELECT sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY name")
}

func cmdColumns(r *Repl, table string) {
	if table == "" {
		printError(r, fmt.Errorf("missing table name, usage: .columns [table_name]"))
		return
	}
	cmdQuery(
		r,
		`SELECT name, type, "notnull" AS not_null, pk FROM pragma_table_info(?) ORDER BY cid`,
		value.Text(table),
	)
}

func cmdCount(r *Repl, table string) {
	if table == "" {
		printError(r, fmt.Errorf("missing table name, usage: .count [table_name]"))
		return
	}
	cmdQuery(r, "SELECT COUNT(*) AS count FROM "+quoteIdent(table))
}

// cmdIdentifier binds token so the shown id comes from the same generator
// used for statement parameters.
func cmdIdentifier(r *Repl, token string) {
	cmdQuery(r, "SELECT ? AS id", value.Text(token))
}

func cmdLoad(r *Repl, path string) {
	if path == "" {
		printError(r, fmt.Errorf("missing schema file, usage: .load [schema_file]"))
		return
	}

	s, err := schema.Load(path)
	if err != nil {
		printError(r, err)
		return
	}

	actions := s.Actions()
	res := r.eng.ExecuteActions(actions...)
	if res.Err != nil {
		printError(r, res.Err)
		return
	}

	fmt.Fprintf(r.out, "Applied %d schema actions from %s\n", len(actions), path)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
