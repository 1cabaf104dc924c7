package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/api/version", h.getVersion)
	if h.opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(h.opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/entities", func(r chi.Router) {
		r.Use(h.withTraceID, h.withLogging, h.withActor)

		r.Get("/", h.listEntities)
		r.Post("/flush", h.flush)
		r.Get("/{entityID}", h.getEntity)
		r.Delete("/{entityID}", h.evictEntity)
		r.Post("/{entityID}/init", h.initEntity)
		r.Post("/{entityID}/toggle", h.toggleEntity)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
