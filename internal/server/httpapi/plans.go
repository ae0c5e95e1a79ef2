package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/dmitrijs2005/lifeboard/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// PlanService is implemented by services.PlanService for both todos and goals.
type PlanService interface {
	ListPending(ctx context.Context) ([]*models.Plan, error)
	ListCompleted(ctx context.Context) ([]*models.Plan, error)
	ListDeleted(ctx context.Context) ([]*models.Plan, error)
	Get(ctx context.Context, id string) (*models.Plan, error)
	Create(ctx context.Context, in services.PlanInput) (*models.Plan, error)
	UpdateStatus(ctx context.Context, id string, status string) (*models.Plan, error)
	SetDeleted(ctx context.Context, id string, deleted bool) (*models.Plan, error)
	Replace(ctx context.Context, id string, in services.PlanInput) (*models.Plan, error)
	Delete(ctx context.Context, id string) (*models.Plan, error)
}

type planHandler struct {
	svc         PlanService
	noun        string
	replacePath string
	logger      logging.Logger
}

func (h *planHandler) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listPending)
	r.Get("/deleted", h.listDeleted)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Patch("/update-status/{id}", h.updateStatus)
	r.Patch("/deleted-status/{id}", h.setDeleted)
	r.Put(h.replacePath, h.replace)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *planHandler) listPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListPending(r.Context())
	if err != nil {
		writeInternal(w, r, h.logger, err)
		return
	}
	writeList(w, items)
}

func (h *planHandler) listDeleted(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListDeleted(r.Context())
	if err != nil {
		writeInternal(w, r, h.logger, err)
		return
	}
	writeList(w, items)
}

func (h *planHandler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	writeFound(w, r, h.logger, item, err)
}

func (h *planHandler) create(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, h.logger, h.noun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *planHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), *req.Status)
	if err != nil {
		writeServiceError(w, r, h.logger, h.noun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *planHandler) setDeleted(w http.ResponseWriter, r *http.Request) {
	var req deletedRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.SetDeleted(r.Context(), chi.URLParam(r, "id"), bool(*req.Deleted))
	if err != nil {
		writeServiceError(w, r, h.logger, h.noun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *planHandler) replace(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.Replace(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, r, h.logger, h.noun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *planHandler) delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, h.noun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
