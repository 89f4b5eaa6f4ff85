package admin

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AdminRoutesManager) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := arm.catalogService.ListCars(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load cars", arm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(cars), gecho.Send())
}

func (arm *AdminRoutesManager) CreateCar(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CarRequest](r)
	if err != nil {
		arm.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	arm.logger.Debug("CreateCar request received",
		gecho.Field("name", body.Name),
		gecho.Field("features_count", len(body.Features)),
	)

	car, err := arm.catalogService.CreateCar(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create car. Please try again", arm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithData(car),
		gecho.WithMessage("Car created successfully"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CarRequest](r)
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	car, err := arm.catalogService.UpdateCar(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update car. Please try again", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(car),
		gecho.WithMessage("Car updated successfully"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", arm.logger, w)
		return
	}

	if err := arm.catalogService.DeleteCar(r.Context(), id); err != nil {
		handling.WriteError(err, "Unable to delete car. Please try again", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Car deleted successfully"),
		gecho.Send(),
	)
}
