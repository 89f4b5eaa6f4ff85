package services

import (
	"car_configurator_server/database"
	"car_configurator_server/store"
	"car_configurator_server/structs/tables"
	"context"
	"time"

	"github.com/google/uuid"
)

// CatalogStore is implemented by store.CatalogStore.
type CatalogStore interface {
	ListCars(ctx context.Context) ([]tables.Car, error)
	GetCar(ctx context.Context, id int64) (*tables.Car, error)
	CarExists(ctx context.Context, id int64) (bool, error)
	CreateCar(ctx context.Context, car *tables.Car, features []string) (*tables.Car, error)
	UpdateCar(ctx context.Context, car *tables.Car, features []string) (*tables.Car, error)
	DeleteCar(ctx context.Context, id int64) error

	ListColors(ctx context.Context) ([]tables.Color, error)
	GetColor(ctx context.Context, id int64) (*tables.Color, error)
	GetColorByCode(ctx context.Context, code string) (*tables.Color, error)
	CreateColor(ctx context.Context, color *tables.Color) (*tables.Color, error)
	UpdateColor(ctx context.Context, color *tables.Color) (*tables.Color, error)
	DeleteColor(ctx context.Context, id int64) error

	ListOptions(ctx context.Context) ([]tables.Option, error)
	GetOption(ctx context.Context, id int64) (*tables.Option, error)
	OptionsByCodes(ctx context.Context, codes []string) ([]tables.Option, error)
	CreateOption(ctx context.Context, option *tables.Option) (*tables.Option, error)
	UpdateOption(ctx context.Context, option *tables.Option) (*tables.Option, error)
	DeleteOption(ctx context.Context, id int64) error

	CarColors(ctx context.Context, carID int64) ([]tables.Color, error)
	CarOptions(ctx context.Context, carID int64) ([]tables.Option, error)
	ReplaceCarColors(ctx context.Context, carID int64, colorIDs []int64) error
	ReplaceCarOptions(ctx context.Context, carID int64, optionIDs []int64) error
}

// QuoteStore is implemented by store.QuoteStore.
type QuoteStore interface {
	Create(ctx context.Context, quote *tables.Quote) (*tables.Quote, error)
	Get(ctx context.Context, id uuid.UUID) (*tables.Quote, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]tables.Quote, error)
	List(ctx context.Context, f store.QuoteFilter) (*database.PaginationResult[tables.Quote], error)
	Replace(ctx context.Context, quote *tables.Quote) (*tables.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserStore is implemented by store.UserStore.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*tables.User, error)
	GetByEmail(ctx context.Context, email string) (*tables.User, error)
	Create(ctx context.Context, user *tables.User) (*tables.User, error)
	List(ctx context.Context) ([]tables.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*tables.User, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*tables.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAdmins(ctx context.Context) (int, error)
}

// ContentStore is implemented by store.ContentStore.
type ContentStore interface {
	ListBrands(ctx context.Context) ([]tables.Brand, error)
	GetBrand(ctx context.Context, id int64) (*tables.Brand, error)
	CreateBrand(ctx context.Context, brand *tables.Brand) (*tables.Brand, error)
	UpdateBrand(ctx context.Context, brand *tables.Brand) (*tables.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListShowrooms(ctx context.Context, region string) ([]tables.Showroom, error)
	GetShowroom(ctx context.Context, id int64) (*tables.Showroom, error)
	CreateShowroom(ctx context.Context, showroom *tables.Showroom) (*tables.Showroom, error)
	UpdateShowroom(ctx context.Context, showroom *tables.Showroom) (*tables.Showroom, error)
	DeleteShowroom(ctx context.Context, id int64) error

	ListFaqs(ctx context.Context, category string, activeOnly bool) ([]tables.Faq, error)
	GetFaq(ctx context.Context, id int64) (*tables.Faq, error)
	CreateFaq(ctx context.Context, faq *tables.Faq) (*tables.Faq, error)
	UpdateFaq(ctx context.Context, faq *tables.Faq) (*tables.Faq, error)
	DeleteFaq(ctx context.Context, id int64) error
}

// CatalogCache is implemented by CacheService. Misses report false with a nil error.
type CatalogCache interface {
	GetCatalogEntry(ctx context.Context, key string, dest any) (bool, error)
	SetCatalogEntry(ctx context.Context, key string, value any) error
	InvalidateCatalog(ctx context.Context) error
}

// TokenBlacklist is implemented by CacheService.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error
	IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error)
}

// Mailer is implemented by EmailService.
type Mailer interface {
	SendQuoteConfirmation(ctx context.Context, user *tables.User, quote *tables.Quote) error
	SendWelcome(ctx context.Context, user *tables.User) error
}
