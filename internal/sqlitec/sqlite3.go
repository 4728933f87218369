package sqlitec

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"modernc.org/libc"
	"modernc.org/libc/sys/types"
	sqlite3 "modernc.org/sqlite/lib"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// sqliteTransient is SQLITE_TRANSIENT, ((sqlite3_destructor_type)-1). It makes
// SQLite take a private copy of bound text and blobs before the bind call
// returns.
const sqliteTransient = ^uintptr(0)

// openFlags are the flags used to open every connection.
const openFlags = sqlite3.SQLITE_OPEN_READWRITE |
	sqlite3.SQLITE_OPEN_CREATE |
	sqlite3.SQLITE_OPEN_URI

// ErrEmptyStatement is returned by Prepare when the query text contains no
// SQL statement, only whitespace or comments.
var ErrEmptyStatement = errors.New("no SQL statement to prepare")

var errClosed = errors.New("database connection is closed")

// Conn represents a high-level connection to a SQLite database.
//
// A Conn owns its own libc thread state and must not be used from more than
// one goroutine at a time.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	tls *libc.TLS
	cDB uintptr
}

// Stmt represents a prepared statement in SQLite.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn  *Conn
	cStmt uintptr
}

// newError builds an *Error for the given result code, attaching the last
// connection diagnostic when there is a connection.
func (conn *Conn) newError(op string, resCode int32) *Error {
	err := &Error{
		Op:       op,
		Code:     int(resCode),
		CodeName: libc.GoString(sqlite3.Xsqlite3_errstr(conn.tls, resCode)),
	}
	if conn.cDB != 0 {
		err.Msg = libc.GoString(sqlite3.Xsqlite3_errmsg(conn.tls, conn.cDB))
	}
	return err
}

func (conn *Conn) malloc(n int) (uintptr, error) {
	if p := libc.Xmalloc(conn.tls, types.Size_t(n)); p != 0 || n == 0 {
		return p, nil
	}
	return 0, fmt.Errorf("cannot allocate %d bytes of memory", n)
}

func (conn *Conn) free(p uintptr) {
	if p != 0 {
		libc.Xfree(conn.tls, p)
	}
}

// Open opens a new SQLite database connection using the given path. The file
// is created if it does not exist. URI filenames (file:...) are accepted.
//
// https://www.sqlite.org/c3ref/open.html
func Open(filePath string) (*Conn, error) {
	conn := &Conn{tls: libc.NewTLS()}

	resCode, err := conn.openV2(filePath)
	if err != nil {
		conn.tls.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if resCode != sqlite3.SQLITE_OK {
		openErr := conn.newError("open database", resCode)
		if conn.cDB != 0 {
			_ = sqlite3.Xsqlite3_close_v2(conn.tls, conn.cDB)
			conn.cDB = 0
		}
		conn.tls.Close()
		return nil, openErr
	}

	return conn, nil
}

// openV2 calls sqlite3_open_v2 and stores the resulting handle, which SQLite
// allocates even when the open itself fails.
func (conn *Conn) openV2(filePath string) (int32, error) {
	cFilePath, err := libc.CString(filePath)
	if err != nil {
		return 0, err
	}
	defer conn.free(cFilePath)

	ppDB, err := conn.malloc(int(ptrSize))
	if err != nil {
		return 0, err
	}
	defer conn.free(ppDB)

	resCode := sqlite3.Xsqlite3_open_v2(conn.tls, cFilePath, ppDB, openFlags, 0)
	conn.cDB = *(*uintptr)(unsafe.Pointer(ppDB))
	return resCode, nil
}

// Close finalizes the connection to the SQLite database.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() error {
	if conn.cDB == 0 {
		return nil
	}

	// The sqlite3_close_v2() interface is intended for use with host
	// languages that are garbage collected, and where the order in which
	// destructors are called is arbitrary.
	resCode := sqlite3.Xsqlite3_close_v2(conn.tls, conn.cDB)
	if resCode != sqlite3.SQLITE_OK {
		return conn.newError("close database", resCode)
	}
	conn.cDB = 0
	conn.tls.Close()
	conn.tls = nil

	return nil
}

// IsClosed reports whether Close has already released the connection.
func (conn *Conn) IsClosed() bool {
	return conn.cDB == 0
}

// LastInsertRowID returns the row ID of the most recent successful INSERT
// into the database from the current connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertRowID() int64 {
	return sqlite3.Xsqlite3_last_insert_rowid(conn.tls, conn.cDB)
}

// RowsAffected returns the number of rows modified, inserted, or deleted by
// the most recent successful INSERT, UPDATE, or DELETE statement from the
// current connection.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) RowsAffected() int64 {
	return int64(sqlite3.Xsqlite3_changes(conn.tls, conn.cDB))
}

// Exec runs every statement of the given SQL text from start to finish,
// discarding any returned rows.
func (conn *Conn) Exec(query string) error {
	if conn.cDB == 0 {
		return errClosed
	}

	cQuery, err := libc.CString(query)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer conn.free(cQuery)

	zSQL := cQuery
	for *(*byte)(unsafe.Pointer(zSQL)) != 0 {
		stmt, tail, err := conn.prepareAt(zSQL)
		if err != nil {
			return err
		}
		if stmt.cStmt != 0 {
			err = stmt.stepUntilDone()
			_ = stmt.Finalize()
			if err != nil {
				return err
			}
		}
		if tail == zSQL {
			break
		}
		zSQL = tail
	}

	return nil
}

// Prepare compiles the first statement of the given query into a prepared
// statement. Any text after the first statement is ignored.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) Prepare(query string) (*Stmt, error) {
	if conn.cDB == 0 {
		return nil, errClosed
	}

	cQuery, err := libc.CString(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer conn.free(cQuery)

	stmt, _, err := conn.prepareAt(cQuery)
	if err != nil {
		return nil, err
	}
	if stmt.cStmt == 0 {
		return nil, ErrEmptyStatement
	}
	return stmt, nil
}

// prepareAt compiles the statement starting at zSQL and returns it together
// with a pointer to the unused remainder of the text. The returned statement
// has a zero handle when zSQL held only whitespace or comments.
func (conn *Conn) prepareAt(zSQL uintptr) (*Stmt, uintptr, error) {
	ppStmt, err := conn.malloc(int(ptrSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer conn.free(ppStmt)

	pzTail, err := conn.malloc(int(ptrSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer conn.free(pzTail)

	resCode := sqlite3.Xsqlite3_prepare_v2(conn.tls, conn.cDB, zSQL, -1, ppStmt, pzTail)
	if resCode != sqlite3.SQLITE_OK {
		return nil, 0, conn.newError("prepare statement", resCode)
	}

	stmt := &Stmt{conn: conn, cStmt: *(*uintptr)(unsafe.Pointer(ppStmt))}
	return stmt, *(*uintptr)(unsafe.Pointer(pzTail)), nil
}

// ReadOnly returns true if the given SQL query is read-only.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (stmt *Stmt) ReadOnly() bool {
	return sqlite3.Xsqlite3_stmt_readonly(stmt.conn.tls, stmt.cStmt) != 0
}

// BindParameterCount returns the largest parameter index used by the
// statement, which is the number of parameters for ?-style placeholders.
//
// https://www.sqlite.org/c3ref/bind_parameter_count.html
func (stmt *Stmt) BindParameterCount() int {
	return int(sqlite3.Xsqlite3_bind_parameter_count(stmt.conn.tls, stmt.cStmt))
}

// BindInt64 binds an int64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(index int, value int64) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := sqlite3.Xsqlite3_bind_int64(stmt.conn.tls, stmt.cStmt, int32(index), value)
	if resCode != sqlite3.SQLITE_OK {
		return stmt.conn.newError("bind int64", resCode)
	}
	return nil
}

// BindFloat64 binds a float64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindFloat64(index int, value float64) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := sqlite3.Xsqlite3_bind_double(stmt.conn.tls, stmt.cStmt, int32(index), value)
	if resCode != sqlite3.SQLITE_OK {
		return stmt.conn.newError("bind float64", resCode)
	}
	return nil
}

// BindText binds a string parameter at the given index. The string is copied
// into C memory and SQLite is told to copy it again, so nothing bound here
// outlives the call.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(index int, value string) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	if len(value) > math.MaxInt32 {
		return stmt.conn.newError("bind text", sqlite3.SQLITE_TOOBIG)
	}

	cStr, err := libc.CString(value)
	if err != nil {
		return fmt.Errorf("failed to bind text: %w", err)
	}
	defer stmt.conn.free(cStr)

	resCode := sqlite3.Xsqlite3_bind_text(
		stmt.conn.tls, stmt.cStmt, int32(index), cStr, int32(len(value)), sqliteTransient,
	)
	if resCode != sqlite3.SQLITE_OK {
		return stmt.conn.newError("bind text", resCode)
	}
	return nil
}

// BindBlob binds a byte slice parameter at the given index with the same copy
// semantics as BindText. An empty or nil slice binds a zero-length blob, not
// NULL.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(index int, data []byte) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}
	if len(data) > math.MaxInt32 {
		return stmt.conn.newError("bind blob", sqlite3.SQLITE_TOOBIG)
	}

	if len(data) == 0 {
		resCode := sqlite3.Xsqlite3_bind_zeroblob(stmt.conn.tls, stmt.cStmt, int32(index), 0)
		if resCode != sqlite3.SQLITE_OK {
			return stmt.conn.newError("bind blob", resCode)
		}
		return nil
	}

	cData, err := stmt.conn.malloc(len(data))
	if err != nil {
		return fmt.Errorf("failed to bind blob: %w", err)
	}
	defer stmt.conn.free(cData)
	copy((*libc.RawMem)(unsafe.Pointer(cData))[:len(data):len(data)], data)

	resCode := sqlite3.Xsqlite3_bind_blob(
		stmt.conn.tls, stmt.cStmt, int32(index), cData, int32(len(data)), sqliteTransient,
	)
	if resCode != sqlite3.SQLITE_OK {
		return stmt.conn.newError("bind blob", resCode)
	}
	return nil
}

// BindNull binds a NULL value at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull(index int) error {
	if stmt.cStmt == 0 {
		return fmt.Errorf("cannot bind to a nil statement")
	}

	resCode := sqlite3.Xsqlite3_bind_null(stmt.conn.tls, stmt.cStmt, int32(index))
	if resCode != sqlite3.SQLITE_OK {
		return stmt.conn.newError("bind null", resCode)
	}
	return nil
}

// Step advances the statement to the next row of data, returning true if a new row
// is available, or false if there are no more rows. If an error occurs, it is returned.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) Step() (bool, error) {
	resCode := sqlite3.Xsqlite3_step(stmt.conn.tls, stmt.cStmt)

	if resCode == sqlite3.SQLITE_DONE {
		return false, nil
	}

	if resCode == sqlite3.SQLITE_ROW {
		return true, nil
	}

	return false, stmt.conn.newError("step statement", resCode)
}

func (stmt *Stmt) stepUntilDone() error {
	for {
		hasNext, err := stmt.Step()
		if err != nil {
			return err
		}
		if !hasNext {
			return nil
		}
	}
}

// ColumnCount returns the number of columns in the current result row.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	return int(sqlite3.Xsqlite3_column_count(stmt.conn.tls, stmt.cStmt))
}

// ColumnName returns the name of the column at the given index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	return libc.GoString(sqlite3.Xsqlite3_column_name(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
}

// ColumnDeclType returns the declared type of the column at the given index,
// or an empty string for expressions.
//
// https://www.sqlite.org/c3ref/column_decltype.html
func (stmt *Stmt) ColumnDeclType(colIndex int) string {
	return libc.GoString(sqlite3.Xsqlite3_column_decltype(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
}

// ColumnType returns the storage class of the value at the given index in the
// current row.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnType(colIndex int) ColumnType {
	return ColumnType(sqlite3.Xsqlite3_column_type(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
}

// ColumnInt64 returns the column value at the given index as int64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt64(colIndex int) int64 {
	return sqlite3.Xsqlite3_column_int64(stmt.conn.tls, stmt.cStmt, int32(colIndex))
}

// ColumnFloat64 returns the column value at the given index as float64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnFloat64(colIndex int) float64 {
	return sqlite3.Xsqlite3_column_double(stmt.conn.tls, stmt.cStmt, int32(colIndex))
}

// ColumnText returns the column value at the given index as a string.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnText(colIndex int) string {
	text := sqlite3.Xsqlite3_column_text(stmt.conn.tls, stmt.cStmt, int32(colIndex))
	if text == 0 {
		return ""
	}
	length := int(sqlite3.Xsqlite3_column_bytes(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
	if length == 0 {
		return ""
	}

	buf := make([]byte, length)
	copy(buf, (*libc.RawMem)(unsafe.Pointer(text))[:length:length])
	return string(buf)
}

// ColumnBlob returns a copy of the column value at the given index. The
// result is never nil, a zero-length blob yields an empty slice.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBlob(colIndex int) []byte {
	dataPtr := sqlite3.Xsqlite3_column_blob(stmt.conn.tls, stmt.cStmt, int32(colIndex))
	size := int(sqlite3.Xsqlite3_column_bytes(stmt.conn.tls, stmt.cStmt, int32(colIndex)))
	if dataPtr == 0 || size <= 0 {
		return []byte{}
	}

	data := make([]byte, size)
	copy(data, (*libc.RawMem)(unsafe.Pointer(dataPtr))[:size:size])
	return data
}

// Finalize frees the resources associated with this statement. It is safe to
// call more than once.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) Finalize() error {
	if stmt.cStmt == 0 {
		return nil
	}

	resCode := sqlite3.Xsqlite3_finalize(stmt.conn.tls, stmt.cStmt)
	stmt.cStmt = 0
	if resCode != sqlite3.SQLITE_OK {
		return stmt.conn.newError("finalize statement", resCode)
	}

	return nil
}
