package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type completedLister interface {
	ListCompleted(ctx context.Context) ([]*models.Plan, error)
}

// achievementHandler serves completed, non-deleted todos and goals.
type achievementHandler struct {
	todos  completedLister
	goals  completedLister
	logger logging.Logger
}

func (h *achievementHandler) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/achieved-todos", h.list(h.todos))
	r.Get("/achieved-goals", h.list(h.goals))
	return r
}

func (h *achievementHandler) list(svc completedLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCompleted(r.Context())
		if err != nil {
			writeInternal(w, r, h.logger, err)
			return
		}
		writeList(w, items)
	}
}
