//go:build !cgo_sqlite

package sqlrepo

// Pure Go SQLite, no C toolchain required. Build with -tags cgo_sqlite to
// use github.com/mattn/go-sqlite3 instead.

import (
	_ "modernc.org/sqlite"
)

// SQLiteDriverName is the database/sql driver registered for SQLite.
const SQLiteDriverName = "sqlite"
