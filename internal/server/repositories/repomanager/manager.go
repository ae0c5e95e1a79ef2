package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/notes"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/plans"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Todos(db dbx.DBTX) plans.Repository
	Goals(db dbx.DBTX) plans.Repository
	Notes(db dbx.DBTX) notes.Repository
	Diaries(db dbx.DBTX) diaries.Repository
}
