package content

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListShowrooms lists every showroom, or only those in ?region= when given.
func (crm *ContentRoutesManager) ListShowrooms(w http.ResponseWriter, r *http.Request) {
	showrooms, err := crm.contentService.ListShowrooms(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		handling.WriteError(err, "Unable to load showrooms", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(showrooms), gecho.Send())
}

func (crm *ContentRoutesManager) GetShowroom(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	showroom, err := crm.contentService.GetShowroom(r.Context(), id)
	if err != nil {
		handling.WriteError(err, "Unable to load showroom", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(showroom), gecho.Send())
}

func (crm *ContentRoutesManager) CreateShowroom(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ShowroomRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	showroom, err := crm.contentService.CreateShowroom(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create showroom", crm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Showroom created successfully"),
		gecho.WithData(showroom),
		gecho.Send(),
	)
}

func (crm *ContentRoutesManager) UpdateShowroom(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ShowroomRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	showroom, err := crm.contentService.UpdateShowroom(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update showroom", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Showroom updated successfully"),
		gecho.WithData(showroom),
		gecho.Send(),
	)
}

func (crm *ContentRoutesManager) DeleteShowroom(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	if err := crm.contentService.DeleteShowroom(r.Context(), id); err != nil {
		handling.WriteError(err, "Unable to delete showroom", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Showroom deleted successfully"), gecho.Send())
}
