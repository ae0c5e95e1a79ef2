package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/dbx"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/notes"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/plans"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- plans ---

type fakePlanRepo struct {
	items      map[string]*models.Plan
	lastFilter plans.Filter
	listOut    []*models.Plan

	createErr error
	listErr   error
	updateErr error
	deleteErr error
}

func newFakePlanRepo(items ...*models.Plan) *fakePlanRepo {
	r := &fakePlanRepo{items: map[string]*models.Plan{}}
	for _, p := range items {
		r.items[p.ID] = p
	}
	return r
}

func (f *fakePlanRepo) Create(ctx context.Context, p *models.Plan) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePlanRepo) Get(ctx context.Context, id string) (*models.Plan, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) GetForUpdate(ctx context.Context, id string) (*models.Plan, error) {
	return f.Get(ctx, id)
}

func (f *fakePlanRepo) List(ctx context.Context, filter plans.Filter) ([]*models.Plan, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakePlanRepo) Update(ctx context.Context, p *models.Plan) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.items[p.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

// --- notes ---

type fakeNoteRepo struct {
	items      map[string]*models.Note
	lastFilter notes.Filter

	createErr error
	updateErr error
}

func newFakeNoteRepo(items ...*models.Note) *fakeNoteRepo {
	r := &fakeNoteRepo{items: map[string]*models.Note{}}
	for _, n := range items {
		r.items[n.ID] = n
	}
	return r
}

func (f *fakeNoteRepo) Create(ctx context.Context, n *models.Note) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *n
	f.items[n.ID] = &cp
	return nil
}

func (f *fakeNoteRepo) Get(ctx context.Context, id string) (*models.Note, error) {
	n, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoteRepo) GetForUpdate(ctx context.Context, id string) (*models.Note, error) {
	return f.Get(ctx, id)
}

func (f *fakeNoteRepo) List(ctx context.Context, filter notes.Filter) ([]*models.Note, error) {
	f.lastFilter = filter
	out := make([]*models.Note, 0)
	for _, n := range f.items {
		if filter.Deleted == nil || n.Deleted == *filter.Deleted {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Update(ctx context.Context, n *models.Note) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *n
	f.items[n.ID] = &cp
	return nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

// --- diaries ---

type fakeDiaryRepo struct {
	items     map[string]*models.DiaryEntry
	created   []*models.DiaryEntry
	lastType  string
	createErr error
}

func newFakeDiaryRepo(items ...*models.DiaryEntry) *fakeDiaryRepo {
	r := &fakeDiaryRepo{items: map[string]*models.DiaryEntry{}}
	for _, e := range items {
		r.items[e.ID] = e
	}
	return r
}

func (f *fakeDiaryRepo) Create(ctx context.Context, e *models.DiaryEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, e)
	f.items[e.ID] = e
	return nil
}

func (f *fakeDiaryRepo) Get(ctx context.Context, id string) (*models.DiaryEntry, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeDiaryRepo) GetForUpdate(ctx context.Context, id string) (*models.DiaryEntry, error) {
	return f.Get(ctx, id)
}

func (f *fakeDiaryRepo) ListByType(ctx context.Context, entryType string) ([]*models.DiaryEntry, error) {
	f.lastType = entryType
	out := make([]*models.DiaryEntry, 0)
	for _, e := range f.items {
		if e.Type == entryType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeDiaryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	todos   *fakePlanRepo
	goals   *fakePlanRepo
	notes   *fakeNoteRepo
	diaries *fakeDiaryRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Todos(db dbx.DBTX) plans.Repository           { return m.todos }
func (m *fakeRepoManager) Goals(db dbx.DBTX) plans.Repository           { return m.goals }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notes.Repository           { return m.notes }
func (m *fakeRepoManager) Diaries(db dbx.DBTX) diaries.Repository       { return m.diaries }
