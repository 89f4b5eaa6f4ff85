package users

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type UserRoutesManager struct {
	logger      *gecho.Logger
	userService *services.UserService
	mw          *middleware.Middleware
}

func NewUserRoutesManager(logger *gecho.Logger, userService *services.UserService, mw *middleware.Middleware) *UserRoutesManager {
	return &UserRoutesManager{
		logger:      logger,
		userService: userService,
		mw:          mw,
	}
}

func (urm *UserRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(urm.mw.UserAuthMiddleware)
		r.Use(urm.mw.AdminAuthMiddleware)

		r.Get("/", urm.ListUsers)
		r.Put("/{id}", urm.UpdateUser)
		r.Put("/{id}/role", urm.UpdateRole)
		r.Delete("/{id}", urm.DeleteUser)
	})
}
