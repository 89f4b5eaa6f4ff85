package auth

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Debug("Failed to extract request body", gecho.Field("error", err))
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	resp, err := arm.authService.Login(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to complete login. Please try again", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(resp),
		gecho.Send(),
	)
}
