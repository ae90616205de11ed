// Package repomanager vends repository implementations for a database
// dialect and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lumen/internal/dbx"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Suggestions(db dbx.DBTX) suggestions.Repository
	Dialect() string
}

// SQLitePrefix selects the local SQLite store, e.g. "sqlite:lumen.db" or
// "sqlite::memory:". Any other DSN is handed to the pgx driver.
const SQLitePrefix = "sqlite:"

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// resolve maps a DSN to a database/sql driver name, its data source and
// the matching manager.
func resolve(dsn string) (driverName, source string, m RepositoryManager) {
	if path, ok := strings.CutPrefix(dsn, SQLitePrefix); ok {
		if path != ":memory:" && !strings.Contains(path, "_pragma=") {
			sep := "?"
			if strings.Contains(path, "?") {
				sep = "&"
			}
			path += sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		}
		return "sqlite", path, &SQLiteRepositoryManager{}
	}
	return "pgx", dsn, &PostgresRepositoryManager{}
}

// Open connects to dsn, verifies the connection and applies migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	driverName, source, m := resolve(dsn)

	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if driverName == "sqlite" {
		// one writer at a time; also keeps :memory: on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", dbx.Classify(err))
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}

	return db, m, nil
}
