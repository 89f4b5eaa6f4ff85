package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// ContentService serves the marketing pages: brand story, showrooms and FAQs.
type ContentService struct {
	logger *gecho.Logger
	store  ContentStore
}

func NewContentService(logger *gecho.Logger, store ContentStore) *ContentService {
	return &ContentService{logger: logger, store: store}
}

// GetBrandInfo returns the brand shown on the public brand page, the first one created.
func (cs *ContentService) GetBrandInfo(ctx context.Context) (*tables.Brand, error) {
	brands, err := cs.store.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, lib.ErrNotFound
	}
	return &brands[0], nil
}

func (cs *ContentService) ListBrands(ctx context.Context) ([]tables.Brand, error) {
	return cs.store.ListBrands(ctx)
}

func (cs *ContentService) GetBrand(ctx context.Context, id int64) (*tables.Brand, error) {
	return cs.store.GetBrand(ctx, id)
}

func brandFromRequest(req *structs.BrandRequest) *tables.Brand {
	return &tables.Brand{
		Name:        strings.TrimSpace(req.Name),
		Logo:        req.Logo,
		Tagline:     req.Tagline,
		Description: req.Description,
		Heritage:    req.Heritage,
		KeyTech:     req.KeyTech,
		Philosophy:  req.Philosophy,
		Values:      req.Values,
	}
}

func (cs *ContentService) CreateBrand(ctx context.Context, req *structs.BrandRequest) (*tables.Brand, error) {
	brand, err := cs.store.CreateBrand(ctx, brandFromRequest(req))
	if err != nil {
		cs.logger.Error("Failed to create brand", gecho.Field("error", err))
		return nil, err
	}
	return brand, nil
}

func (cs *ContentService) UpdateBrand(ctx context.Context, id int64, req *structs.BrandRequest) (*tables.Brand, error) {
	existing, err := cs.store.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	brand := brandFromRequest(req)
	brand.ID = id
	brand.CreatedAt = existing.CreatedAt
	return cs.store.UpdateBrand(ctx, brand)
}

func (cs *ContentService) DeleteBrand(ctx context.Context, id int64) error {
	return cs.store.DeleteBrand(ctx, id)
}

// ListShowrooms filters by region when region is non-empty.
func (cs *ContentService) ListShowrooms(ctx context.Context, region string) ([]tables.Showroom, error) {
	return cs.store.ListShowrooms(ctx, strings.TrimSpace(region))
}

func (cs *ContentService) GetShowroom(ctx context.Context, id int64) (*tables.Showroom, error) {
	return cs.store.GetShowroom(ctx, id)
}

func showroomFromRequest(req *structs.ShowroomRequest) *tables.Showroom {
	return &tables.Showroom{
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		Phone:    req.Phone,
		Hours:    req.Hours,
		Services: req.Services,
		ImageURL: req.ImageURL,
		Region:   req.Region,
	}
}

func (cs *ContentService) CreateShowroom(ctx context.Context, req *structs.ShowroomRequest) (*tables.Showroom, error) {
	return cs.store.CreateShowroom(ctx, showroomFromRequest(req))
}

func (cs *ContentService) UpdateShowroom(ctx context.Context, id int64, req *structs.ShowroomRequest) (*tables.Showroom, error) {
	existing, err := cs.store.GetShowroom(ctx, id)
	if err != nil {
		return nil, err
	}
	showroom := showroomFromRequest(req)
	showroom.ID = id
	showroom.CreatedAt = existing.CreatedAt
	return cs.store.UpdateShowroom(ctx, showroom)
}

func (cs *ContentService) DeleteShowroom(ctx context.Context, id int64) error {
	return cs.store.DeleteShowroom(ctx, id)
}

// ListFaqs returns active FAQs for the public page, optionally narrowed to one category.
func (cs *ContentService) ListFaqs(ctx context.Context, category string) ([]tables.Faq, error) {
	return cs.store.ListFaqs(ctx, strings.TrimSpace(category), true)
}

// ListAllFaqs includes inactive entries, for the admin screen.
func (cs *ContentService) ListAllFaqs(ctx context.Context) ([]tables.Faq, error) {
	return cs.store.ListFaqs(ctx, "", false)
}

func (cs *ContentService) GetFaq(ctx context.Context, id int64) (*tables.Faq, error) {
	return cs.store.GetFaq(ctx, id)
}

func faqFromRequest(req *structs.FaqRequest) *tables.Faq {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &tables.Faq{
		Category:     strings.TrimSpace(req.Category),
		Question:     req.Question,
		Answer:       req.Answer,
		DisplayOrder: req.DisplayOrder,
		IsActive:     active,
	}
}

func (cs *ContentService) CreateFaq(ctx context.Context, req *structs.FaqRequest) (*tables.Faq, error) {
	return cs.store.CreateFaq(ctx, faqFromRequest(req))
}

func (cs *ContentService) UpdateFaq(ctx context.Context, id int64, req *structs.FaqRequest) (*tables.Faq, error) {
	existing, err := cs.store.GetFaq(ctx, id)
	if err != nil {
		return nil, err
	}
	faq := faqFromRequest(req)
	faq.ID = id
	faq.CreatedAt = existing.CreatedAt
	faq.UpdatedAt = time.Now()
	return cs.store.UpdateFaq(ctx, faq)
}

func (cs *ContentService) DeleteFaq(ctx context.Context, id int64) error {
	return cs.store.DeleteFaq(ctx, id)
}
