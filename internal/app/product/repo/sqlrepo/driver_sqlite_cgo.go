//go:build cgo_sqlite

package sqlrepo

// CGO SQLite driver. Requires CGO_ENABLED=1.

import (
	_ "github.com/mattn/go-sqlite3"
)

const SQLiteDriverName = "sqlite3"
