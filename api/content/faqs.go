package content

import (
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListFaqs returns the active FAQs, optionally narrowed to ?category=.
func (crm *ContentRoutesManager) ListFaqs(w http.ResponseWriter, r *http.Request) {
	faqs, err := crm.contentService.ListFaqs(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		handling.WriteError(err, "Unable to load FAQs", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(faqs), gecho.Send())
}

// ListAllFaqs includes inactive entries.
func (crm *ContentRoutesManager) ListAllFaqs(w http.ResponseWriter, r *http.Request) {
	faqs, err := crm.contentService.ListAllFaqs(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load FAQs", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(faqs), gecho.Send())
}

func (crm *ContentRoutesManager) GetFaq(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	faq, err := crm.contentService.GetFaq(r.Context(), id)
	if err != nil {
		handling.WriteError(err, "Unable to load FAQ", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(faq), gecho.Send())
}

func (crm *ContentRoutesManager) CreateFaq(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.FaqRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	faq, err := crm.contentService.CreateFaq(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Unable to create FAQ", crm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("FAQ created successfully"),
		gecho.WithData(faq),
		gecho.Send(),
	)
}

func (crm *ContentRoutesManager) UpdateFaq(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.FaqRequest](r)
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	faq, err := crm.contentService.UpdateFaq(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update FAQ", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("FAQ updated successfully"),
		gecho.WithData(faq),
		gecho.Send(),
	)
}

func (crm *ContentRoutesManager) DeleteFaq(w http.ResponseWriter, r *http.Request) {
	id, err := lib.Int64Param(r, "id")
	if err != nil {
		handling.WriteError(err, "", crm.logger, w)
		return
	}

	if err := crm.contentService.DeleteFaq(r.Context(), id); err != nil {
		handling.WriteError(err, "Unable to delete FAQ", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("FAQ deleted successfully"), gecho.Send())
}
