package quotes

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (qrm *QuoteRoutesManager) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := lib.UUIDParam(r, "id")
	if err != nil {
		handling.WriteError(err, "", qrm.logger, w)
		return
	}

	quote, err := qrm.quoteService.GetByID(r.Context(), id, middleware.CallerFromContext(r.Context()))
	if err != nil {
		handling.WriteError(err, "Unable to load quote", qrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(quote),
		gecho.Send(),
	)
}

func (qrm *QuoteRoutesManager) ListMyQuotes(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if caller == nil {
		handling.WriteError(lib.ErrUnauthenticated, "", qrm.logger, w)
		return
	}

	quotes, err := qrm.quoteService.ListByOwner(r.Context(), caller.UserID)
	if err != nil {
		handling.WriteError(err, "Unable to load your quotes", qrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(quotes),
		gecho.Send(),
	)
}
