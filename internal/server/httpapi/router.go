// Package httpapi is the REST surface: a chi router mounting one handler
// group per resource under /api, plus /metrics.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/dmitrijs2005/lifeboard/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps carries everything the router needs. Metrics and RateLimiter are
// optional; an empty CORSAllowedOrigins disables CORS headers.
type Deps struct {
	Todos   PlanService
	Goals   PlanService
	Notes   NoteService
	Diaries DiaryService

	Logger             logging.Logger
	Metrics            *metrics.Metrics
	RateLimiter        *RateLimiter
	CORSAllowedOrigins []string
}

func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logging.Nop{}
	}
	log = log.With("module", "http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(capturePeer)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
	}
	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(corsHandler(d.CORSAllowedOrigins))
	}

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Handler)
		}

		r.Mount("/todos", (&planHandler{svc: d.Todos, noun: "Todo", replacePath: "/update-todo/{id}", logger: log}).routes())
		r.Mount("/goals", (&planHandler{svc: d.Goals, noun: "Goal", replacePath: "/update-goal/{id}", logger: log}).routes())
		r.Mount("/notes", (&noteHandler{svc: d.Notes, logger: log}).routes())
		r.Mount("/diaries", (&diaryHandler{svc: d.Diaries, logger: log}).routes())
		r.Mount("/achievements", (&achievementHandler{todos: d.Todos, goals: d.Goals, logger: log}).routes())
	})

	return r
}
