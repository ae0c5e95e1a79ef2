package plans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

const columns = "id, name, description, start_date, end_date, status, deleted"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db    dbx.DBTX
	table string
}

// NewPostgresRepository binds a repository to db and one of TableTodos or
// TableGoals. table is interpolated into SQL and must never come from input.
func NewPostgresRepository(db dbx.DBTX, table string) *PostgresRepository {
	return &PostgresRepository{db: db, table: table}
}

func (r *PostgresRepository) Create(ctx context.Context, plan *models.Plan) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`, r.table, columns)

	_, err := r.db.ExecContext(ctx, query,
		plan.ID, plan.Name, plan.Description, plan.StartDate, plan.EndDate, plan.Status, plan.Deleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Plan, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Plan, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *PostgresRepository) get(ctx context.Context, id string, lock string) (*models.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1%s`, columns, r.table, lock)

	plan := &models.Plan{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&plan.ID, &plan.Name, &plan.Description, &plan.StartDate, &plan.EndDate, &plan.Status, &plan.Deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return plan, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*models.Plan, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Deleted != nil {
		args = append(args, *filter.Deleted)
		conds = append(conds, fmt.Sprintf("deleted = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, columns, r.table)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", r.table, err)
	}
	defer rows.Close()

	result := make([]*models.Plan, 0)
	for rows.Next() {
		var item models.Plan
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.StartDate, &item.EndDate, &item.Status, &item.Deleted,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites every column but id. A missing row yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, plan *models.Plan) error {
	query := fmt.Sprintf(
		`UPDATE %s SET name = $2, description = $3, start_date = $4, end_date = $5, status = $6, deleted = $7 WHERE id = $1`,
		r.table)

	res, err := r.db.ExecContext(ctx, query,
		plan.ID, plan.Name, plan.Description, plan.StartDate, plan.EndDate, plan.Status, plan.Deleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	res, err := r.db.ExecContext(ctx, query, id)
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
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
