package cars

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (crm *CarRoutesManager) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := crm.catalogService.ListCars(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load cars", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(cars),
		gecho.Send(),
	)
}

func (crm *CarRoutesManager) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	car, err := crm.catalogService.GetCar(r.Context(), id)
	if err != nil {
		handling.WriteError(err, "Unable to load car", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(car),
		gecho.Send(),
	)
}

func (crm *CarRoutesManager) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := crm.catalogService.ListColors(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load colors", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(colors), gecho.Send())
}

func (crm *CarRoutesManager) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := crm.catalogService.ListOptions(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load options", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(options), gecho.Send())
}

// GetAvailableColors lists the colors offered for one car. An unknown car is a 404.
func (crm *CarRoutesManager) GetAvailableColors(w http.ResponseWriter, r *http.Request) {
	carID, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	colors, err := crm.catalogService.GetCarColors(r.Context(), carID)
	if err != nil {
		handling.WriteError(err, "Unable to load colors for car", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(colors), gecho.Send())
}

func (crm *CarRoutesManager) GetAvailableOptions(w http.ResponseWriter, r *http.Request) {
	carID, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	options, err := crm.catalogService.GetCarOptions(r.Context(), carID)
	if err != nil {
		handling.WriteError(err, "Unable to load options for car", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(options), gecho.Send())
}
