package notes

import (
	"context"

	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

// Filter narrows List results. A nil Deleted lists every note.
type Filter struct {
	Deleted *bool
}

type Repository interface {
	Create(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, id string) (*models.Note, error)
	GetForUpdate(ctx context.Context, id string) (*models.Note, error)
	List(ctx context.Context, filter Filter) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}
