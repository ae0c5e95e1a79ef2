package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/notes"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type NoteInput struct {
	Name       string
	Details    string
	Importance string
}

type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, rm repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: rm}
}

func (s *NoteService) ListActive(ctx context.Context) ([]*models.Note, error) {
	deleted := false
	return s.repomanager.Notes(s.db).List(ctx, notes.Filter{Deleted: &deleted})
}

func (s *NoteService) ListDeleted(ctx context.Context) ([]*models.Note, error) {
	deleted := true
	return s.repomanager.Notes(s.db).List(ctx, notes.Filter{Deleted: &deleted})
}

func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.repomanager.Notes(s.db).Get(ctx, id)
}

func (s *NoteService) Create(ctx context.Context, in NoteInput) (*models.Note, error) {
	note := &models.Note{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Details:    in.Details,
		Importance: in.Importance,
	}
	if err := s.repomanager.Notes(s.db).Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) SetDeleted(ctx context.Context, id string, deleted bool) (*models.Note, error) {
	return s.modify(ctx, id, func(n *models.Note) {
		n.Deleted = deleted
	})
}

// Replace overwrites name, details and importance. The deleted flag is kept.
func (s *NoteService) Replace(ctx context.Context, id string, in NoteInput) (*models.Note, error) {
	return s.modify(ctx, id, func(n *models.Note) {
		n.Name = in.Name
		n.Details = in.Details
		n.Importance = in.Importance
	})
}

func (s *NoteService) Delete(ctx context.Context, id string) (*models.Note, error) {
	var removed *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)
		n, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *NoteService) modify(ctx context.Context, id string, apply func(*models.Note)) (*models.Note, error) {
	var updated *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)
		n, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		apply(n)
		if err := repo.Update(ctx, n); err != nil {
			return err
		}
		updated = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
