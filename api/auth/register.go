package auth

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Debug("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	resp, err := arm.authService.Register(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create account. Please try again", arm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Registration successful"),
		gecho.WithData(resp),
		gecho.Send(),
	)
}
