package cars

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (crm *CarRoutesManager) CreateCar(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CarRequest](r)
	if err != nil {
		crm.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	car, err := crm.catalogService.CreateCar(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create car. Please try again", crm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithData(car),
		gecho.WithMessage("Car created successfully"),
		gecho.Send(),
	)
}

func (crm *CarRoutesManager) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CarRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	car, err := crm.catalogService.UpdateCar(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update car. Please try again", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(car),
		gecho.WithMessage("Car updated successfully"),
		gecho.Send(),
	)
}

func (crm *CarRoutesManager) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	if err := crm.catalogService.DeleteCar(r.Context(), id); err != nil {
		handling.WriteError(err, "Unable to delete car. Please try again", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Car deleted successfully"),
		gecho.Send(),
	)
}

// UpdateCarColors replaces the set of colors offered for a car.
func (crm *CarRoutesManager) UpdateCarColors(w http.ResponseWriter, r *http.Request) {
	carID, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CarColorsRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	colors, err := crm.catalogService.UpdateCarColors(r.Context(), carID, body.ColorIDs)
	if err != nil {
		handling.WriteError(err, "Unable to update car colors", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(colors),
		gecho.WithMessage("Car colors updated successfully"),
		gecho.Send(),
	)
}

// UpdateCarOptions replaces the set of options offered for a car.
func (crm *CarRoutesManager) UpdateCarOptions(w http.ResponseWriter, r *http.Request) {
	carID, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CarOptionsRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	options, err := crm.catalogService.UpdateCarOptions(r.Context(), carID, body.OptionIDs)
	if err != nil {
		handling.WriteError(err, "Unable to update car options", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(options),
		gecho.WithMessage("Car options updated successfully"),
		gecho.Send(),
	)
}
