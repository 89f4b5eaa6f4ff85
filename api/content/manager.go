package content

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// ContentRoutesManager serves the brand, showroom and FAQ pages.
type ContentRoutesManager struct {
	logger         *gecho.Logger
	contentService *services.ContentService
	mw             *middleware.Middleware
}

func NewContentRoutesManager(logger *gecho.Logger, contentService *services.ContentService, mw *middleware.Middleware) *ContentRoutesManager {
	return &ContentRoutesManager{
		logger:         logger,
		contentService: contentService,
		mw:             mw,
	}
}

func (crm *ContentRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/brands", func(r chi.Router) {
		r.Get("/", crm.GetBrandInfo)
		r.Get("/{id}", crm.GetBrand)

		r.Route("/admin", func(r chi.Router) {
			r.Use(crm.mw.UserAuthMiddleware)
			r.Use(crm.mw.AdminAuthMiddleware)
			r.Get("/all", crm.ListBrands)
			r.Post("/", crm.CreateBrand)
			r.Put("/{id}", crm.UpdateBrand)
			r.Delete("/{id}", crm.DeleteBrand)
		})
	})

	r.Route("/showrooms", func(r chi.Router) {
		r.Get("/", crm.ListShowrooms)
		r.Get("/{id}", crm.GetShowroom)

		r.Route("/admin", func(r chi.Router) {
			r.Use(crm.mw.UserAuthMiddleware)
			r.Use(crm.mw.AdminAuthMiddleware)
			r.Post("/", crm.CreateShowroom)
			r.Put("/{id}", crm.UpdateShowroom)
			r.Delete("/{id}", crm.DeleteShowroom)
		})
	})

	r.Route("/faqs", func(r chi.Router) {
		r.Get("/", crm.ListFaqs)
		r.Get("/{id}", crm.GetFaq)

		r.Route("/admin", func(r chi.Router) {
			r.Use(crm.mw.UserAuthMiddleware)
			r.Use(crm.mw.AdminAuthMiddleware)
			r.Get("/all", crm.ListAllFaqs)
			r.Post("/", crm.CreateFaq)
			r.Put("/{id}", crm.UpdateFaq)
			r.Delete("/{id}", crm.DeleteFaq)
		})
	})
}
