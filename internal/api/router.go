package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Helm/internal/steering"
)

// NewRouter serves the steering API. rateLimit is the number of steer
// requests per second allowed for one vehicle.
func NewRouter(ctrl *steering.Controller, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))

	steer := NewSteerHandler(ctrl, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(RateLimitMiddleware(rateLimit, time.Second)).Post("/steer", steer.Steer)
		r.Get("/fuzzify/{variable}", steer.Fuzzify)
		r.Get("/engine", steer.Engine)
		r.Get("/engine/fll", steer.FLL)
		r.Get("/stats", steer.Stats)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
