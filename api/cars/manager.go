package cars

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CarRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
	mw             *middleware.Middleware
}

func NewCarRoutesManager(logger *gecho.Logger, catalogService *services.CatalogService, mw *middleware.Middleware) *CarRoutesManager {
	return &CarRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		mw:             mw,
	}
}

func (crm *CarRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cars", func(r chi.Router) {
		// Public catalog
		r.Get("/", crm.ListCars)
		r.Get("/data/colors", crm.ListColors)
		r.Get("/data/options", crm.ListOptions)
		r.Get("/{id}", crm.GetCar)
		r.Get("/{id}/available-colors", crm.GetAvailableColors)
		r.Get("/{id}/available-options", crm.GetAvailableOptions)

		// Admin catalog management
		r.Group(func(r chi.Router) {
			r.Use(crm.mw.UserAuthMiddleware)
			r.Use(crm.mw.AdminAuthMiddleware)

			r.Post("/admin", crm.CreateCar)
			r.Put("/admin/{id}", crm.UpdateCar)
			r.Delete("/admin/{id}", crm.DeleteCar)
			r.Put("/{id}/colors", crm.UpdateCarColors)
			r.Put("/{id}/options", crm.UpdateCarOptions)
		})
	})
}
