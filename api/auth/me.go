package auth

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if caller == nil {
		handling.WriteError(lib.ErrUnauthenticated, "", arm.logger, w)
		return
	}

	user, err := arm.authService.Me(r.Context(), caller.UserID)
	if err != nil {
		handling.WriteError(err, "Unable to load your account", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}

// HandleDeleteMe deletes the caller's account along with every quote they own.
func (arm *AuthRoutesManager) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if caller == nil {
		handling.WriteError(lib.ErrUnauthenticated, "", arm.logger, w)
		return
	}

	if err := arm.authService.DeleteSelf(r.Context(), caller); err != nil {
		handling.WriteError(err, "Unable to delete your account", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Account deleted successfully"),
		gecho.Send(),
	)
}
