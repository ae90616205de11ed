package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lumen/internal/dbx"
	"github.com/dmitrijs2005/lumen/internal/server/migrations"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager serves the shared multi-client store.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Suggestions(db dbx.DBTX) suggestions.Repository {
	return suggestions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Dialect() string {
	return "postgres"
}

// RunMigrations applies the embedded PostgreSQL migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Postgres)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "postgres")
}
