package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type DiaryService interface {
	ListImages(ctx context.Context) ([]*models.DiaryEntry, error)
	ListVideos(ctx context.Context) ([]*models.DiaryEntry, error)
	Get(ctx context.Context, id string) (*models.DiaryEntry, error)
	CreateImage(ctx context.Context, link string) (*models.DiaryEntry, error)
	CreateVideo(ctx context.Context, link string) (*models.DiaryEntry, error)
	PresignImageUpload(ctx context.Context) (*models.UploadTicket, error)
	Delete(ctx context.Context, id string) (*models.DiaryEntry, error)
}

const diaryNoun = "Diary"

type diaryHandler struct {
	svc    DiaryService
	logger logging.Logger
}

func (h *diaryHandler) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/images", h.listImages)
	r.Get("/videos", h.listVideos)
	r.Get("/{id}", h.get)
	r.Post("/new-image", h.createImage)
	r.Post("/new-video", h.createVideo)
	r.Post("/image-uploads", h.presignUpload)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *diaryHandler) listImages(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListImages(r.Context())
	if err != nil {
		writeInternal(w, r, h.logger, err)
		return
	}
	writeList(w, items)
}

func (h *diaryHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListVideos(r.Context())
	if err != nil {
		writeInternal(w, r, h.logger, err)
		return
	}
	writeList(w, items)
}

func (h *diaryHandler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	writeFound(w, r, h.logger, item, err)
}

func (h *diaryHandler) createImage(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.CreateImage(r.Context(), *req.Link)
	if err != nil {
		writeServiceError(w, r, h.logger, diaryNoun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *diaryHandler) createVideo(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decode(r, &req); err != nil {
		writeValidation(w, err)
		return
	}

	item, err := h.svc.CreateVideo(r.Context(), *req.Link)
	if err != nil {
		writeServiceError(w, r, h.logger, diaryNoun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *diaryHandler) presignUpload(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.PresignImageUpload(r.Context())
	if err != nil {
		if errors.Is(err, common.ErrorStorageDisabled) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
		writeInternal(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *diaryHandler) delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, diaryNoun, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
