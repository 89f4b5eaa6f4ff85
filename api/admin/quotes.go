package admin

import (
	"car_configurator_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListQuotes returns a paginated list of quotes with optional filtering, newest first by default
func (arm *AdminRoutesManager) ListQuotes(w http.ResponseWriter, r *http.Request) {
	filter, err := handling.ParseQuoteListOptions(r)
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	result, err := arm.quoteService.ListAll(r.Context(), filter)
	if err != nil {
		arm.logger.Error("Failed to list quotes",
			gecho.Field("error", err),
			gecho.Field("page", filter.Page),
			gecho.Field("page_size", filter.PageSize))
		handling.WriteError(err, "Unable to load quotes", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}
