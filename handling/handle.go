package handling

import (
	"car_configurator_server/config"
	"car_configurator_server/lib"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError logs an unexpected failure and answers 500. The cause is echoed back outside production.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	if config.IsProduction() {
		return gecho.InternalServerError(w, gecho.WithMessage(msg)).Send()
	}
	return gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.WithData(err.Error())).Send()
}

// WriteError maps service errors onto status codes. Anything unrecognised goes through HandleError with msg.
func WriteError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	var verr *lib.ValidationError
	switch {
	case errors.As(err, &verr):
		return gecho.BadRequest(w, gecho.WithMessage("Validation failed"), gecho.WithData(verr.Errors)).Send()
	case errors.Is(err, lib.ErrMissingReference):
		return gecho.BadRequest(w, gecho.WithMessage("Referenced resource does not exist")).Send()
	case errors.Is(err, lib.ErrSelfDelete):
		return gecho.BadRequest(w, gecho.WithMessage(err.Error())).Send()
	case errors.Is(err, lib.ErrInvalidCredentials):
		return gecho.Unauthorized(w, gecho.WithMessage("Invalid email or password")).Send()
	case errors.Is(err, lib.ErrUnauthenticated):
		return gecho.Unauthorized(w, gecho.WithMessage("Authentication required")).Send()
	case errors.Is(err, lib.ErrExpiredToken), errors.Is(err, lib.ErrInvalidToken):
		return gecho.Unauthorized(w, gecho.WithMessage("Invalid or expired access token")).Send()
	case errors.Is(err, lib.ErrForbidden):
		return gecho.Forbidden(w, gecho.WithMessage("Access denied")).Send()
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage("Resource not found")).Send()
	case errors.Is(err, lib.ErrLastAdmin):
		return gecho.Conflict(w, gecho.WithMessage(err.Error())).Send()
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage("Resource already exists or is still referenced")).Send()
	}
	return HandleError(err, msg, logger, w)
}
