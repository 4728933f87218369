package bench

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/mattn/go-sqlite3"
)

// mattnConnector opens mattn/go-sqlite3 connections and runs the same
// post-open pragmas the Engine gets.
type mattnConnector struct {
	driver          driver.Driver
	dbPath          string
	postOpenQueries []string
}

func newMattnConnector(dbPath string, postOpenQueries []string) driver.Connector {
	return &mattnConnector{
		driver:          &sqlite3.SQLiteDriver{},
		dbPath:          dbPath,
		postOpenQueries: postOpenQueries,
	}
}

// Connect creates a new database connection with the post-open pragmas
// applied.
func (c *mattnConnector) Connect(context.Context) (driver.Conn, error) {
	conn, err := c.driver.Open("file:" + c.dbPath)
	if err != nil {
		return nil, err
	}

	for _, query := range c.postOpenQueries {
		if err := exec(conn, query); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

func (c *mattnConnector) Driver() driver.Driver {
	return c.driver
}

func exec(conn driver.Conn, query string) error {
	stmt, err := conn.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(nil)
	return err
}

// openMattn returns a single connection pool, matching the one connection
// owned by an Engine.
func openMattn(dbPath string, postOpenQueries []string) (*sql.DB, error) {
	db := sql.OpenDB(newMattnConnector(dbPath, postOpenQueries))
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
