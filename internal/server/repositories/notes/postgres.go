package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) error {
	query := `INSERT INTO notes (id, name, details, importance, deleted) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, note.ID, note.Name, note.Details, note.Importance, note.Deleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	return r.get(ctx, `SELECT id, name, details, importance, deleted FROM notes WHERE id = $1`, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Note, error) {
	return r.get(ctx, `SELECT id, name, details, importance, deleted FROM notes WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) get(ctx context.Context, query string, id string) (*models.Note, error) {
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&note.ID, &note.Name, &note.Details, &note.Importance, &note.Deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*models.Note, error) {
	query := `SELECT id, name, details, importance, deleted FROM notes`
	var args []any
	if filter.Deleted != nil {
		query += ` WHERE deleted = $1`
		args = append(args, *filter.Deleted)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.Name, &item.Details, &item.Importance, &item.Deleted); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) error {
	query := `UPDATE notes SET name = $2, details = $3, importance = $4, deleted = $5 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, note.ID, note.Name, note.Details, note.Importance, note.Deleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
