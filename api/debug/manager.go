package debug

import (
	"car_configurator_server/services"
	"car_configurator_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	cacheService *services.CacheService
}

func NewDebugRoutesManager(logger *gecho.Logger, cfg *structs.Config, cacheService *services.CacheService) *DebugRoutesManager {
	return &DebugRoutesManager{
		logger:       logger,
		cfg:          cfg,
		cacheService: cacheService,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if drm.cfg.Server.Environment == "production" {
		return
	}
	r.Route("/debug", func(r chi.Router) {
		r.Post("/cache/clear", drm.ClearCache)
	})
}
