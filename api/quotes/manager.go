package quotes

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type QuoteRoutesManager struct {
	logger       *gecho.Logger
	quoteService *services.QuoteService
	mw           *middleware.Middleware
}

func NewQuoteRoutesManager(logger *gecho.Logger, quoteService *services.QuoteService, mw *middleware.Middleware) *QuoteRoutesManager {
	return &QuoteRoutesManager{
		logger:       logger,
		quoteService: quoteService,
		mw:           mw,
	}
}

func (qrm *QuoteRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		// Anonymous or signed in
		r.Group(func(r chi.Router) {
			r.Use(qrm.mw.OptionalAuthMiddleware)
			r.Post("/", qrm.CreateQuote)
			r.Get("/{id}", qrm.GetQuote)
		})

		r.Group(func(r chi.Router) {
			r.Use(qrm.mw.UserAuthMiddleware)
			r.Get("/my", qrm.ListMyQuotes)
			r.Put("/{id}", qrm.UpdateQuote)
			r.Delete("/{id}", qrm.DeleteQuote)
		})
	})
}
