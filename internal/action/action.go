// Package action renders the schema-mutation statements applied to a
// database. Rendering never touches a database; the statements are run by
// the engine.
//
// Table and column names are interpolated into the statement text as they
// are. Callers must only pass trusted identifiers.
package action

import (
	"fmt"

	"github.com/orsinium-labs/enum"
)

// Reserved columns present in every table created by CreateTable.
const (
	IDColumn        = "_id_"
	TimestampColumn = "_timestamp_"
)

// Kind is the statement shape of an Action.
type Kind enum.Member[string]

var (
	KindCreateTable = Kind{Value: "create_table"}
	KindCreateIndex = Kind{Value: "create_index"}
	KindAddColumn   = Kind{Value: "add_column"}

	Kinds = enum.New(KindCreateTable, KindCreateIndex, KindAddColumn)
)

// Action is a rendered schema-mutation statement.
type Action struct {
	kind      Kind
	statement string
}

// Kind returns the statement shape.
func (a Action) Kind() Kind {
	return a.kind
}

// Statement returns the SQL text to execute.
func (a Action) Statement() string {
	return a.statement
}

func (a Action) String() string {
	return a.kind.Value + ": " + a.statement
}

// CreateTable renders a table holding only the two reserved columns: a text
// primary key and a text timestamp.
func CreateTable(table string) Action {
	return Action{
		kind: KindCreateTable,
		statement: fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (%s TEXT PRIMARY KEY, %s TEXT);",
			table, IDColumn, TimestampColumn,
		),
	}
}

// CreateIndex renders an index named idx_<table>_<column>.
func CreateIndex(table string, column string, ascending bool) Action {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	return Action{
		kind: KindCreateIndex,
		statement: fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s %s);",
			table, column, table, column, direction,
		),
	}
}

// AddColumn renders a column addition. SQLite has no "ADD COLUMN IF NOT
// EXISTS", so applying it twice fails with a "duplicate column name" error
// that the engine treats as already applied.
func AddColumn(table string, column string, dataType DataType) Action {
	return Action{
		kind: KindAddColumn,
		statement: fmt.Sprintf(
			"ALTER TABLE %s ADD COLUMN %s %s;",
			table, column, dataType.NativeType(),
		),
	}
}
