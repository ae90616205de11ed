// Package httpapi serves the plain-HTTP side of the server: health probes
// for orchestrators and the read-only achievement and resource catalogs.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Store  Pinger
	Logger logging.Logger
}

func NewRouter(dep Dependencies) http.Handler {
	h := &handlers{store: dep.Store}

	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.Recoverer)
	r.Use(requestLogger(dep.Logger))

	r.Get("/healthz", h.liveness)
	r.Get("/readyz", h.readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/achievements", h.listAchievements)
		api.Get("/resources", h.listResources)
		api.Get("/resources/{id}", h.getResource)
	})

	return r
}

func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug(r.Context(), "request",
				"id", chimid.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
