package admin

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
	quoteService   *services.QuoteService
	userService    *services.UserService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
	quoteService *services.QuoteService,
	userService *services.UserService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		quoteService:   quoteService,
		userService:    userService,
		mw:             mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.UserAuthMiddleware)
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Route("/cars", func(r chi.Router) {
			r.Get("/", arm.ListCars)
			r.Post("/", arm.CreateCar)
			r.Put("/{id}", arm.UpdateCar)
			r.Delete("/{id}", arm.DeleteCar)
		})

		r.Route("/colors", func(r chi.Router) {
			r.Get("/", arm.ListColors)
			r.Post("/", arm.CreateColor)
			r.Put("/{id}", arm.UpdateColor)
			r.Delete("/{id}", arm.DeleteColor)
		})

		r.Route("/options", func(r chi.Router) {
			r.Get("/", arm.ListOptions)
			r.Post("/", arm.CreateOption)
			r.Put("/{id}", arm.UpdateOption)
			r.Delete("/{id}", arm.DeleteOption)
		})

		r.Get("/quotes", arm.ListQuotes)

		r.Get("/users", arm.ListUsers)
		r.Delete("/users/{id}", arm.DeleteUser)
	})
}
