package sqlitec

import (
	"fmt"

	sqlite3 "modernc.org/sqlite/lib"
)

// ColumnType is the storage class SQLite reports for a value in a result
// column.
//
// https://www.sqlite.org/c3ref/c_blob.html
type ColumnType int

const (
	ColumnTypeInteger ColumnType = sqlite3.SQLITE_INTEGER
	ColumnTypeFloat   ColumnType = sqlite3.SQLITE_FLOAT
	ColumnTypeText    ColumnType = sqlite3.SQLITE_TEXT
	ColumnTypeBlob    ColumnType = sqlite3.SQLITE_BLOB
	ColumnTypeNull    ColumnType = sqlite3.SQLITE_NULL
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeFloat:
		return "FLOAT"
	case ColumnTypeText:
		return "TEXT"
	case ColumnTypeBlob:
		return "BLOB"
	case ColumnTypeNull:
		return "NULL"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// Error is a failure reported by SQLite.
type Error struct {
	// Op is the operation that failed, e.g. "prepare statement".
	Op string
	// Code is the primary SQLite result code.
	Code int
	// CodeName is the English description of Code (sqlite3_errstr).
	CodeName string
	// Msg is the connection diagnostic (sqlite3_errmsg), may be empty.
	Msg string
}

func (e *Error) Error() string {
	if e.Msg == "" || e.Msg == e.CodeName {
		return fmt.Sprintf("failed to %s: %s", e.Op, e.CodeName)
	}
	return fmt.Sprintf("failed to %s: %s: %s", e.Op, e.CodeName, e.Msg)
}
