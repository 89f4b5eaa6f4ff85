package api

import (
	"car_configurator_server/api/admin"
	"car_configurator_server/api/auth"
	"car_configurator_server/api/cars"
	"car_configurator_server/api/content"
	"car_configurator_server/api/debug"
	"car_configurator_server/api/health"
	"car_configurator_server/api/middleware"
	"car_configurator_server/api/quotes"
	"car_configurator_server/api/users"
	"car_configurator_server/services"
	"car_configurator_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	carRoutes     *cars.CarRoutesManager
	quoteRoutes   *quotes.QuoteRoutesManager
	authRoutes    *auth.AuthRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	userRoutes    *users.UserRoutesManager
	contentRoutes *content.ContentRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		carRoutes:     cars.NewCarRoutesManager(logger, sm.CatalogService, mw),
		quoteRoutes:   quotes.NewQuoteRoutesManager(logger, sm.QuoteService, mw),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm.CatalogService, sm.QuoteService, sm.UserService, mw),
		userRoutes:    users.NewUserRoutesManager(logger, sm.UserService, mw),
		contentRoutes: content.NewContentRoutesManager(logger, sm.ContentService, mw),
		healthRoutes:  health.NewHealthRoutesManager(logger, sm.HealthService),
		debugRoutes:   debug.NewDebugRoutesManager(logger, cfg, sm.CacheService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.carRoutes.RegisterRoutes(r)
	rm.quoteRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.userRoutes.RegisterRoutes(r)
	rm.contentRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
