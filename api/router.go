package api

import (
	"car_configurator_server/api/health"
	"car_configurator_server/api/middleware"
	"car_configurator_server/config"
	"car_configurator_server/services"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// App builds the router on the process-wide configuration.
func App(sm *services.ServiceManager) chi.Router {
	return NewRouter(config.GetConfig(), sm)
}

// NewRouter mounts every route group under /api on top of the shared middleware stack.
func NewRouter(cfg *structs.Config, sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// create loggers
	mwLogger := config.NewLogger(false)
	standardLogger := config.NewLogger(true)

	// Rate limit counters live in Redis; without it nothing is limited
	var limiter middleware.RateLimitCounter
	if sm.CacheService.Enabled() {
		limiter = sm.CacheService
	}

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.AuthService, limiter)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit())
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(middleware.MetricsMiddleware)
	r.Use(mw.SetupLoggerMiddleware())

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	r.Use(mw.RateLimitMiddleware())

	// Set before mounting so the /api subrouter inherits it
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.WithMessage("Route not found"),
			gecho.Send(),
		)
	})

	// Register all routes
	r.Route("/api", func(r chi.Router) {
		NewRouterManager(standardLogger, cfg, sm, mw).RegisterRoutes(r)
	})

	// Probes and scrapers hit the root paths as well
	health.NewHealthRoutesManager(standardLogger, sm.HealthService).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the "+cfg.Server.AppName+" API"),
			gecho.Send(),
		)
	})

	return r
}
