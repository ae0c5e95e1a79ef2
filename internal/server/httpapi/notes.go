package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/dmitrijs2005/lifeboard/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type NoteService interface {
	ListActive(ctx context.Context) ([]*models.Note, error)
	ListDeleted(ctx context.Context) ([]*models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, in services.NoteInput) (*models.Note, error)
	SetDeleted(ctx context.Context, id string, deleted bool) (*models.Note, error)
	Replace(ctx context.Context, id string, in services.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, id string) (*models.Note, error)
}

const noteNoun = "Note"

type noteHandler struct {
	svc    NoteService
	logger logging.Logger
}

func (h *noteHandler) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listActive)
	r.Get("/deleted", h.listDeleted)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Patch("/deleted-status/{id}", h.setDeleted)
	r.Put("/update-note/{id}", h.replace)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *noteHandler) listActive(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListActive(r.Context())
	if err != nil {
		writeInternal(w, r, h.logger, err)
		return
	}
	writeList(w, items)
}

func (h *noteHandler) listDeleted(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListDeleted(r.Context())
	if err != nil {
		writeInternal(w, r, h.logger, err)
		return
	}
	writeList(w, items)
}

func (h *noteHandler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	writeFound(w, r, h.logger, item, err)
}

func (h *noteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, h.logger, noteNoun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *noteHandler) setDeleted(w http.ResponseWriter, r *http.Request) {
	var req deletedRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.SetDeleted(r.Context(), chi.URLParam(r, "id"), bool(*req.Deleted))
	if err != nil {
		writeServiceError(w, r, h.logger, noteNoun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *noteHandler) replace(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.Replace(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, r, h.logger, noteNoun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *noteHandler) delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, noteNoun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
