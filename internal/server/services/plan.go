// Package services contains the server-side operations behind each HTTP
// route. Read-modify-write operations lock the row with GetForUpdate and
// write it back inside one transaction.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/plans"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PlanInput carries the mutable fields of a todo or goal.
type PlanInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
}

// PlanService serves either todos or goals, depending on the repository
// accessor it was built with.
type PlanService struct {
	db   *sql.DB
	repo func(db dbx.DBTX) plans.Repository
}

func NewTodoService(db *sql.DB, rm repomanager.RepositoryManager) *PlanService {
	return &PlanService{db: db, repo: rm.Todos}
}

func NewGoalService(db *sql.DB, rm repomanager.RepositoryManager) *PlanService {
	return &PlanService{db: db, repo: rm.Goals}
}

// ListPending returns plans that are pending and not soft-deleted.
func (s *PlanService) ListPending(ctx context.Context) ([]*models.Plan, error) {
	status, deleted := models.StatusPending, false
	return s.repo(s.db).List(ctx, plans.Filter{Status: &status, Deleted: &deleted})
}

// ListCompleted returns plans that are completed and not soft-deleted.
func (s *PlanService) ListCompleted(ctx context.Context) ([]*models.Plan, error) {
	status, deleted := models.StatusCompleted, false
	return s.repo(s.db).List(ctx, plans.Filter{Status: &status, Deleted: &deleted})
}

func (s *PlanService) ListDeleted(ctx context.Context) ([]*models.Plan, error) {
	deleted := true
	return s.repo(s.db).List(ctx, plans.Filter{Deleted: &deleted})
}

func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	return s.repo(s.db).Get(ctx, id)
}

// Create stores a new plan under a fresh id. New plans are never deleted.
func (s *PlanService) Create(ctx context.Context, in PlanInput) (*models.Plan, error) {
	plan := &models.Plan{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      in.Status,
		Deleted:     false,
	}
	if err := s.repo(s.db).Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) UpdateStatus(ctx context.Context, id string, status string) (*models.Plan, error) {
	return s.modify(ctx, id, func(p *models.Plan) {
		p.Status = status
	})
}

func (s *PlanService) SetDeleted(ctx context.Context, id string, deleted bool) (*models.Plan, error) {
	return s.modify(ctx, id, func(p *models.Plan) {
		p.Deleted = deleted
	})
}

// Replace overwrites every mutable field. The deleted flag is kept.
func (s *PlanService) Replace(ctx context.Context, id string, in PlanInput) (*models.Plan, error) {
	return s.modify(ctx, id, func(p *models.Plan) {
		p.Name = in.Name
		p.Description = in.Description
		p.StartDate = in.StartDate
		p.EndDate = in.EndDate
		p.Status = in.Status
	})
}

// Delete removes the row and returns it as it was.
func (s *PlanService) Delete(ctx context.Context, id string) (*models.Plan, error) {
	var removed *models.Plan
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		removed = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *PlanService) modify(ctx context.Context, id string, apply func(*models.Plan)) (*models.Plan, error) {
	var updated *models.Plan
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		apply(p)
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
