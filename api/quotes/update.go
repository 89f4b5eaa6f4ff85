package quotes

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (qrm *QuoteRoutesManager) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	id, err := lib.UUIDParam(r, "id")
	if err != nil {
		handling.WriteError(err, "", qrm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.QuoteRequest](r)
	if err != nil {
		handling.WriteError(err, "", qrm.logger, w)
		return
	}

	quote, err := qrm.quoteService.Update(r.Context(), id, body, middleware.CallerFromContext(r.Context()))
	if err != nil {
		handling.WriteError(err, "Unable to update quote. Please try again", qrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Quote updated successfully"),
		gecho.WithData(quote),
		gecho.Send(),
	)
}

func (qrm *QuoteRoutesManager) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := lib.UUIDParam(r, "id")
	if err != nil {
		handling.WriteError(err, "", qrm.logger, w)
		return
	}

	if err := qrm.quoteService.Delete(r.Context(), id, middleware.CallerFromContext(r.Context())); err != nil {
		handling.WriteError(err, "Unable to delete quote. Please try again", qrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Quote deleted successfully"),
		gecho.Send(),
	)
}
