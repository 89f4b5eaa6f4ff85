package admin

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AdminRoutesManager) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := arm.catalogService.ListOptions(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load options", arm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(options), gecho.Send())
}

func (arm *AdminRoutesManager) CreateOption(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OptionRequest](r)
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	option, err := arm.catalogService.CreateOption(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create option. Please try again", arm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithData(option),
		gecho.WithMessage("Option created successfully"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateOption(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OptionRequest](r)
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	option, err := arm.catalogService.UpdateOption(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update option. Please try again", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(option),
		gecho.WithMessage("Option updated successfully"),
		gecho.Send(),
	)
}

// DeleteOption answers 409 while a car still offers the option.
func (arm *AdminRoutesManager) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	if err := arm.catalogService.DeleteOption(r.Context(), id); err != nil {
		handling.WriteError(err, "Unable to delete option. Please try again", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Option deleted successfully"),
		gecho.Send(),
	)
}
