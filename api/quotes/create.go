package quotes

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// CreateQuote saves a priced configuration. Signed-in callers own the quote; anonymous quotes have no owner.
func (qrm *QuoteRoutesManager) CreateQuote(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.QuoteRequest](r)
	if err != nil {
		qrm.logger.Debug("Rejected quote request body", gecho.Field("error", err))
		handling.WriteError(err, "", qrm.logger, w)
		return
	}

	quote, err := qrm.quoteService.Create(r.Context(), body, middleware.CallerFromContext(r.Context()))
	if err != nil {
		handling.WriteError(err, "Unable to save quote. Please try again", qrm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Quote saved successfully"),
		gecho.WithData(quote),
		gecho.Send(),
	)
}
