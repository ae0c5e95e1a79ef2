package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/dmitrijs2005/lifeboard/internal/server/services"
)

type fakePlanService struct {
	items   map[string]*models.Plan
	listOut []*models.Plan
	err     error

	calls      []string
	lastInput  services.PlanInput
	lastStatus string
	lastFlag   bool
}

func newFakePlanService(items ...*models.Plan) *fakePlanService {
	f := &fakePlanService{items: map[string]*models.Plan{}}
	for _, p := range items {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakePlanService) lookup(id string) (*models.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePlanService) ListPending(ctx context.Context) ([]*models.Plan, error) {
	f.calls = append(f.calls, "ListPending")
	return f.listOut, f.err
}

func (f *fakePlanService) ListCompleted(ctx context.Context) ([]*models.Plan, error) {
	f.calls = append(f.calls, "ListCompleted")
	return f.listOut, f.err
}

func (f *fakePlanService) ListDeleted(ctx context.Context) ([]*models.Plan, error) {
	f.calls = append(f.calls, "ListDeleted")
	return f.listOut, f.err
}

func (f *fakePlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	f.calls = append(f.calls, "Get")
	return f.lookup(id)
}

func (f *fakePlanService) Create(ctx context.Context, in services.PlanInput) (*models.Plan, error) {
	f.calls = append(f.calls, "Create")
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	p := &models.Plan{ID: "new-id", Name: in.Name, Description: in.Description,
		StartDate: in.StartDate, EndDate: in.EndDate, Status: in.Status}
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePlanService) UpdateStatus(ctx context.Context, id string, status string) (*models.Plan, error) {
	f.calls = append(f.calls, "UpdateStatus")
	f.lastStatus = status
	p, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	p.Status = status
	return p, nil
}

func (f *fakePlanService) SetDeleted(ctx context.Context, id string, deleted bool) (*models.Plan, error) {
	f.calls = append(f.calls, "SetDeleted")
	f.lastFlag = deleted
	p, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	p.Deleted = deleted
	return p, nil
}

func (f *fakePlanService) Replace(ctx context.Context, id string, in services.PlanInput) (*models.Plan, error) {
	f.calls = append(f.calls, "Replace")
	f.lastInput = in
	p, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	p.Name, p.Description, p.StartDate, p.EndDate, p.Status = in.Name, in.Description, in.StartDate, in.EndDate, in.Status
	return p, nil
}

func (f *fakePlanService) Delete(ctx context.Context, id string) (*models.Plan, error) {
	f.calls = append(f.calls, "Delete")
	p, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(f.items, id)
	return p, nil
}

type fakeNoteService struct {
	items     map[string]*models.Note
	listOut   []*models.Note
	err       error
	calls     []string
	lastInput services.NoteInput
}

func newFakeNoteService(items ...*models.Note) *fakeNoteService {
	f := &fakeNoteService{items: map[string]*models.Note{}}
	for _, n := range items {
		f.items[n.ID] = n
	}
	return f
}

func (f *fakeNoteService) lookup(id string) (*models.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return n, nil
}

func (f *fakeNoteService) ListActive(ctx context.Context) ([]*models.Note, error) {
	f.calls = append(f.calls, "ListActive")
	return f.listOut, f.err
}

func (f *fakeNoteService) ListDeleted(ctx context.Context) ([]*models.Note, error) {
	f.calls = append(f.calls, "ListDeleted")
	return f.listOut, f.err
}

func (f *fakeNoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return f.lookup(id)
}

func (f *fakeNoteService) Create(ctx context.Context, in services.NoteInput) (*models.Note, error) {
	f.calls = append(f.calls, "Create")
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Note{ID: "new-id", Name: in.Name, Details: in.Details, Importance: in.Importance}, nil
}

func (f *fakeNoteService) SetDeleted(ctx context.Context, id string, deleted bool) (*models.Note, error) {
	n, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	n.Deleted = deleted
	return n, nil
}

func (f *fakeNoteService) Replace(ctx context.Context, id string, in services.NoteInput) (*models.Note, error) {
	f.lastInput = in
	n, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	n.Name, n.Details, n.Importance = in.Name, in.Details, in.Importance
	return n, nil
}

func (f *fakeNoteService) Delete(ctx context.Context, id string) (*models.Note, error) {
	n, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(f.items, id)
	return n, nil
}

type fakeDiaryService struct {
	items    map[string]*models.DiaryEntry
	listOut  []*models.DiaryEntry
	err      error
	videoErr error
	ticket   *models.UploadTicket
	calls    []string
	lastLink string
}

func newFakeDiaryService(items ...*models.DiaryEntry) *fakeDiaryService {
	f := &fakeDiaryService{items: map[string]*models.DiaryEntry{}}
	for _, e := range items {
		f.items[e.ID] = e
	}
	return f
}

func (f *fakeDiaryService) lookup(id string) (*models.DiaryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeDiaryService) ListImages(ctx context.Context) ([]*models.DiaryEntry, error) {
	f.calls = append(f.calls, "ListImages")
	return f.listOut, f.err
}

func (f *fakeDiaryService) ListVideos(ctx context.Context) ([]*models.DiaryEntry, error) {
	f.calls = append(f.calls, "ListVideos")
	return f.listOut, f.err
}

func (f *fakeDiaryService) Get(ctx context.Context, id string) (*models.DiaryEntry, error) {
	return f.lookup(id)
}

func (f *fakeDiaryService) CreateImage(ctx context.Context, link string) (*models.DiaryEntry, error) {
	f.calls = append(f.calls, "CreateImage")
	f.lastLink = link
	if f.err != nil {
		return nil, f.err
	}
	return &models.DiaryEntry{ID: "new-id", Link: link, Type: models.DiaryImage}, nil
}

func (f *fakeDiaryService) CreateVideo(ctx context.Context, link string) (*models.DiaryEntry, error) {
	f.calls = append(f.calls, "CreateVideo")
	f.lastLink = link
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return &models.DiaryEntry{ID: "new-id", Link: "embed:" + link, Type: models.DiaryVideo}, nil
}

func (f *fakeDiaryService) PresignImageUpload(ctx context.Context) (*models.UploadTicket, error) {
	f.calls = append(f.calls, "PresignImageUpload")
	if f.err != nil {
		return nil, f.err
	}
	return f.ticket, nil
}

func (f *fakeDiaryService) Delete(ctx context.Context, id string) (*models.DiaryEntry, error) {
	e, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(f.items, id)
	return e, nil
}

type testServices struct {
	todos   *fakePlanService
	goals   *fakePlanService
	notes   *fakeNoteService
	diaries *fakeDiaryService
}

func newTestServices() *testServices {
	return &testServices{
		todos:   newFakePlanService(),
		goals:   newFakePlanService(),
		notes:   newFakeNoteService(),
		diaries: newFakeDiaryService(),
	}
}

func (s *testServices) router() http.Handler {
	return NewRouter(Deps{
		Todos:              s.todos,
		Goals:              s.goals,
		Notes:              s.notes,
		Diaries:            s.diaries,
		CORSAllowedOrigins: []string{"*"},
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
