package diaries

import (
	"context"

	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.DiaryEntry) error
	Get(ctx context.Context, id string) (*models.DiaryEntry, error)
	GetForUpdate(ctx context.Context, id string) (*models.DiaryEntry, error)
	ListByType(ctx context.Context, entryType string) ([]*models.DiaryEntry, error)
	Delete(ctx context.Context, id string) error
}
