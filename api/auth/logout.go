package auth

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleLogout revokes the bearer token used for this request.
func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		handling.WriteError(lib.ErrUnauthenticated, "", arm.logger, w)
		return
	}

	if err := arm.authService.Logout(r.Context(), claims); err != nil {
		handling.WriteError(err, "Failed to logout", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}
