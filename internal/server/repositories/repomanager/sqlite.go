package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lumen/internal/dbx"
	"github.com/dmitrijs2005/lumen/internal/server/migrations"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager serves the local single-process store.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Suggestions(db dbx.DBTX) suggestions.Repository {
	return suggestions.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Dialect() string {
	return "sqlite"
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}
