// Package plans stores todos and goals. Both tables share one schema, so a
// single repository implementation is bound to either table by name.
package plans

import (
	"context"

	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

// Table names served by this package.
const (
	TableTodos = "todos"
	TableGoals = "goals"
)

// Filter narrows List results. Nil fields are not filtered on.
type Filter struct {
	Status  *string
	Deleted *bool
}

type Repository interface {
	Create(ctx context.Context, plan *models.Plan) error
	Get(ctx context.Context, id string) (*models.Plan, error)
	GetForUpdate(ctx context.Context, id string) (*models.Plan, error)
	List(ctx context.Context, filter Filter) ([]*models.Plan, error)
	Update(ctx context.Context, plan *models.Plan) error
	Delete(ctx context.Context, id string) error
}
