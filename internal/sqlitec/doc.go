// Package sqlitec provides a lightweight wrapper for the SQLite C library.
// It allows direct interaction with SQLite's low-level API through the
// modernc.org/sqlite translation of the C sources, so no cgo is involved.
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package sqlitec
