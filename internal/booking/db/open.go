package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Open opens the SQLite store at path. busy_timeout is carried in the
// DSN so every connection database/sql pools gets the bound, not just
// the one a pool-level Exec would happen to run on: a writer facing a
// locked database waits up to busyTimeout and then fails instead of
// hanging or failing immediately.
func Open(path string, busyTimeout time.Duration) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, busyTimeout/time.Millisecond)

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}

	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("connect to sqlite at %s: %w", path, err)
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
