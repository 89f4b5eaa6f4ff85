package content

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetBrandInfo returns the brand shown on the public brand page.
func (crm *ContentRoutesManager) GetBrandInfo(w http.ResponseWriter, r *http.Request) {
	brand, err := crm.contentService.GetBrandInfo(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load brand information", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(brand), gecho.Send())
}

func (crm *ContentRoutesManager) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	brand, err := crm.contentService.GetBrand(r.Context(), id)
	if err != nil {
		handling.WriteError(err, "Unable to load brand", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(brand), gecho.Send())
}

func (crm *ContentRoutesManager) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := crm.contentService.ListBrands(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load brands", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(brands), gecho.Send())
}

func (crm *ContentRoutesManager) CreateBrand(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BrandRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	brand, err := crm.contentService.CreateBrand(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create brand", crm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Brand created successfully"),
		gecho.WithData(brand),
		gecho.Send(),
	)
}

func (crm *ContentRoutesManager) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.BrandRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	brand, err := crm.contentService.UpdateBrand(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update brand", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Brand updated successfully"),
		gecho.WithData(brand),
		gecho.Send(),
	)
}

func (crm *ContentRoutesManager) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	if err := crm.contentService.DeleteBrand(r.Context(), id); err != nil {
		handling.WriteError(err, "Unable to delete brand", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Brand deleted successfully"), gecho.Send())
}
