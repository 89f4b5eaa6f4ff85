package store

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"car_configurator_server/structs/tables"
	"context"
)

type ContentStore struct {
	db *database.DB
}

func NewContentStore(db *database.DB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) ListBrands(ctx context.Context) ([]tables.Brand, error) {
	brands, err := database.Query[tables.Brand](s.db).OrderBy("b.id", database.ASC).All(ctx)
	return brands, lib.MapPgError(err)
}

func (s *ContentStore) GetBrand(ctx context.Context, id int64) (*tables.Brand, error) {
	return firstOrNotFound(ctx, database.Query[tables.Brand](s.db).Where("b.id", id))
}

func (s *ContentStore) CreateBrand(ctx context.Context, brand *tables.Brand) (*tables.Brand, error) {
	created, err := database.Query[tables.Brand](s.db).Insert(ctx, brand)
	return created, lib.MapPgError(err)
}

func (s *ContentStore) UpdateBrand(ctx context.Context, brand *tables.Brand) (*tables.Brand, error) {
	return updateModel(ctx, s.db, brand)
}

func (s *ContentStore) DeleteBrand(ctx context.Context, id int64) error {
	return deleteByID[tables.Brand](ctx, s.db, "id", id)
}

// ListShowrooms returns every showroom, or only those in region when it is not empty.
func (s *ContentStore) ListShowrooms(ctx context.Context, region string) ([]tables.Showroom, error) {
	showrooms, err := s.showrooms(region).All(ctx)
	return showrooms, lib.MapPgError(err)
}

func (s *ContentStore) showrooms(region string) *database.QueryBuilder[tables.Showroom] {
	q := database.Query[tables.Showroom](s.db)
	if region != "" {
		q = q.Where("s.region", region)
	}
	return q.OrderBy("s.id", database.ASC)
}

func (s *ContentStore) GetShowroom(ctx context.Context, id int64) (*tables.Showroom, error) {
	return firstOrNotFound(ctx, database.Query[tables.Showroom](s.db).Where("s.id", id))
}

func (s *ContentStore) CreateShowroom(ctx context.Context, showroom *tables.Showroom) (*tables.Showroom, error) {
	created, err := database.Query[tables.Showroom](s.db).Insert(ctx, showroom)
	return created, lib.MapPgError(err)
}

func (s *ContentStore) UpdateShowroom(ctx context.Context, showroom *tables.Showroom) (*tables.Showroom, error) {
	return updateModel(ctx, s.db, showroom)
}

func (s *ContentStore) DeleteShowroom(ctx context.Context, id int64) error {
	return deleteByID[tables.Showroom](ctx, s.db, "id", id)
}

// ListFaqs orders by display_order then id. activeOnly hides inactive entries.
func (s *ContentStore) ListFaqs(ctx context.Context, category string, activeOnly bool) ([]tables.Faq, error) {
	faqs, err := s.faqs(category, activeOnly).All(ctx)
	return faqs, lib.MapPgError(err)
}

func (s *ContentStore) faqs(category string, activeOnly bool) *database.QueryBuilder[tables.Faq] {
	q := database.Query[tables.Faq](s.db)
	if activeOnly {
		q = q.Where("f.is_active", true)
	}
	if category != "" {
		q = q.Where("f.category", category)
	}
	return q.OrderBy("f.display_order", database.ASC).OrderBy("f.id", database.ASC)
}

func (s *ContentStore) GetFaq(ctx context.Context, id int64) (*tables.Faq, error) {
	return firstOrNotFound(ctx, database.Query[tables.Faq](s.db).Where("f.id", id))
}

func (s *ContentStore) CreateFaq(ctx context.Context, faq *tables.Faq) (*tables.Faq, error) {
	created, err := database.Query[tables.Faq](s.db).Insert(ctx, faq)
	return created, lib.MapPgError(err)
}

func (s *ContentStore) UpdateFaq(ctx context.Context, faq *tables.Faq) (*tables.Faq, error) {
	return updateModel(ctx, s.db, faq)
}

func (s *ContentStore) DeleteFaq(ctx context.Context, id int64) error {
	return deleteByID[tables.Faq](ctx, s.db, "id", id)
}
