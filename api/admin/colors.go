package admin

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AdminRoutesManager) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := arm.catalogService.ListColors(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load colors", arm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(colors), gecho.Send())
}

func (arm *AdminRoutesManager) CreateColor(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ColorRequest](r)
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	color, err := arm.catalogService.CreateColor(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create color. Please try again", arm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithData(color),
		gecho.WithMessage("Color created successfully"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateColor(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ColorRequest](r)
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	color, err := arm.catalogService.UpdateColor(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update color. Please try again", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(color),
		gecho.WithMessage("Color updated successfully"),
		gecho.Send(),
	)
}

// DeleteColor answers 409 while a car still offers the color.
func (arm *AdminRoutesManager) DeleteColor(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	if err := arm.catalogService.DeleteColor(r.Context(), id); err != nil {
		handling.WriteError(err, "Unable to delete color. Please try again", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Color deleted successfully"),
		gecho.Send(),
	)
}
