package diaries

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

func (r *PostgresRepository) Create(ctx context.Context, entry *models.DiaryEntry) error {
	query := `INSERT INTO diaries (id, link, type) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, entry.ID, entry.Link, entry.Type); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.DiaryEntry, error) {
	return r.get(ctx, `SELECT id, link, type FROM diaries WHERE id = $1`, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.DiaryEntry, error) {
	return r.get(ctx, `SELECT id, link, type FROM diaries WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) get(ctx context.Context, query string, id string) (*models.DiaryEntry, error) {
	entry := &models.DiaryEntry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&entry.ID, &entry.Link, &entry.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// ListByType returns entries of one kind, models.DiaryImage or models.DiaryVideo.
func (r *PostgresRepository) ListByType(ctx context.Context, entryType string) ([]*models.DiaryEntry, error) {
	query := `SELECT id, link, type FROM diaries WHERE type = $1`

	rows, err := r.db.QueryContext(ctx, query, entryType)
	if err != nil {
		return nil, fmt.Errorf("failed to select diaries: %w", err)
	}
	defer rows.Close()

	result := make([]*models.DiaryEntry, 0)
	for rows.Next() {
		var item models.DiaryEntry
		if err := rows.Scan(&item.ID, &item.Link, &item.Type); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
