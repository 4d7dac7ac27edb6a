package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/paschalion/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /api/v1/leap/{year}
//	GET  /api/v1/convert/gregorian/{date}
//	GET  /api/v1/convert/julian/{date}
//	GET  /api/v1/jdn/{jdn}
//	GET  /api/v1/easter/{year}
//	GET  /api/v1/feasts/{year}
//	GET  /api/v1/echo                 ?start=&end=
//	GET  /api/v1/echo/today
//	GET  /api/v1/echo/{date}
//	GET  /api/v1/day/{date}
//	GET  /api/v1/paschalion           ?from=&to=
//	POST /api/v1/paschalion           X-API-Key
func SetupRoutes(h *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", CodeBadRequest)
	})

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leap/{year}", h.GetLeap)
		r.Get("/convert/gregorian/{date}", h.ConvertGregorian)
		r.Get("/convert/julian/{date}", h.ConvertJulian)
		r.Get("/jdn/{jdn}", h.GetJDN)
		r.Get("/easter/{year}", h.GetEaster)
		r.Get("/feasts/{year}", h.GetFeasts)

		r.Get("/echo", h.GetEchoRange)
		r.Get("/echo/today", h.GetTodayEcho)
		r.Get("/echo/{date}", h.GetDateEcho)
		r.Get("/day/{date}", h.GetDay)

		r.Get("/paschalion", h.ListPaschalion)
		r.With(AuthMiddleware(cfg, logger)).Post("/paschalion", h.GeneratePaschalion)
	})

	return r
}
