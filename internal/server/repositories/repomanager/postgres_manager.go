// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/migrations"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/notes"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/plans"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound to
// whatever DBTX the caller holds, a pool or an open transaction.
type PostgresRepositoryManager struct{}

// Todos returns a plans.Repository over the todos table.
func (m *PostgresRepositoryManager) Todos(db dbx.DBTX) plans.Repository {
	return plans.NewPostgresRepository(db, plans.TableTodos)
}

// Goals returns a plans.Repository over the goals table.
func (m *PostgresRepositoryManager) Goals(db dbx.DBTX) plans.Repository {
	return plans.NewPostgresRepository(db, plans.TableGoals)
}

func (m *PostgresRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Diaries(db dbx.DBTX) diaries.Repository {
	return diaries.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
