package admin

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AdminRoutesManager) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := arm.userService.List(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load users", arm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(users), gecho.Send())
}

// DeleteUser removes another account. Administrators cannot delete themselves here.
func (arm *AdminRoutesManager) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := lib.UUIDParam(r, "id")
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	if err := arm.userService.Delete(r.Context(), id, middleware.CallerFromContext(r.Context())); err != nil {
		handling.WriteError(err, "Unable to delete user", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User deleted successfully"),
		gecho.Send(),
	)
}
