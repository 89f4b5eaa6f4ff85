// Package memory implements the service store interfaces in process memory.
// It backs DB_DRIVER=memory for running the API without Postgres, and the tests.
package memory

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"car_configurator_server/store"
	"car_configurator_server/structs/tables"
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pinger always reports healthy.
type Pinger struct{}

func (Pinger) Ping(ctx context.Context) error { return nil }

// Catalog keeps cars, colors, options and their associations in memory.
type Catalog struct {
	mu           sync.Mutex
	Cars         map[int64]tables.Car
	Colors       []tables.Color
	Options      []tables.Option
	CarColorIDs  map[int64][]int64
	CarOptionIDs map[int64][]int64
	nextID       int64
}

func NewCatalog() *Catalog {
	return &Catalog{
		Cars:         map[int64]tables.Car{},
		CarColorIDs:  map[int64][]int64{},
		CarOptionIDs: map[int64][]int64{},
		nextID:       100,
	}
}

// NewSeededCatalog returns a small demo catalog: a sedan and an SUV, two colors and three options.
func NewSeededCatalog() *Catalog {
	return &Catalog{
		Cars: map[int64]tables.Car{
			1: {ID: 1, Name: "Sedan", Brand: "Hyundai", BasePrice: 30_000_000, Features: []string{"ABS"}},
			2: {ID: 2, Name: "SUV", Brand: "Hyundai", BasePrice: 45_000_000, Features: []string{}},
		},
		Colors: []tables.Color{
			{ID: 1, Code: "BLACK", Name: "Black", Hex: "#000000", Price: 0},
			{ID: 2, Code: "PEARL", Name: "Pearl White", Hex: "#F5F5F5", Price: 500_000},
		},
		Options: []tables.Option{
			{ID: 1, Code: "NAVI", Name: "Navigation", Price: 300_000},
			{ID: 2, Code: "SUNROOF", Name: "Sunroof", Price: 1_200_000},
			{ID: 3, Code: "SEATS", Name: "Heated seats", Price: 800_000},
		},
		CarColorIDs:  map[int64][]int64{1: {1, 2}},
		CarOptionIDs: map[int64][]int64{1: {1, 2}},
		nextID:       100,
	}
}

func (m *Catalog) ListCars(ctx context.Context) ([]tables.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tables.Car, 0, len(m.Cars))
	for _, c := range m.Cars {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Catalog) GetCar(ctx context.Context, id int64) (*tables.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Cars[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return &c, nil
}

func (m *Catalog) CarExists(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Cars[id]
	return ok, nil
}

func (m *Catalog) CreateCar(ctx context.Context, car *tables.Car, features []string) (*tables.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	car.ID = m.nextID
	car.Features = append([]string{}, features...)
	m.Cars[car.ID] = *car
	return car, nil
}

func (m *Catalog) UpdateCar(ctx context.Context, car *tables.Car, features []string) (*tables.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Cars[car.ID]; !ok {
		return nil, lib.ErrNotFound
	}
	car.Features = append([]string{}, features...)
	m.Cars[car.ID] = *car
	return car, nil
}

func (m *Catalog) DeleteCar(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Cars[id]; !ok {
		return lib.ErrNotFound
	}
	delete(m.Cars, id)
	return nil
}

func (m *Catalog) ListColors(ctx context.Context) ([]tables.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Colors), nil
}

func (m *Catalog) GetColor(ctx context.Context, id int64) (*tables.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Colors {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Catalog) GetColorByCode(ctx context.Context, code string) (*tables.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Colors {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Catalog) CreateColor(ctx context.Context, color *tables.Color) (*tables.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Colors {
		if c.Code == color.Code {
			return nil, lib.ErrConflict
		}
	}
	m.nextID++
	color.ID = m.nextID
	m.Colors = append(m.Colors, *color)
	return color, nil
}

func (m *Catalog) UpdateColor(ctx context.Context, color *tables.Color) (*tables.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.Colors {
		if c.ID == color.ID {
			m.Colors[i] = *color
			return color, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Catalog) DeleteColor(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.Colors {
		if c.ID == id {
			m.Colors = slices.Delete(m.Colors, i, i+1)
			return nil
		}
	}
	return lib.ErrNotFound
}

func (m *Catalog) ListOptions(ctx context.Context) ([]tables.Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Options), nil
}

func (m *Catalog) GetOption(ctx context.Context, id int64) (*tables.Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.Options {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Catalog) OptionsByCodes(ctx context.Context, codes []string) ([]tables.Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.Option{}
	for _, o := range m.Options {
		if slices.Contains(codes, o.Code) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Catalog) CreateOption(ctx context.Context, option *tables.Option) (*tables.Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	option.ID = m.nextID
	m.Options = append(m.Options, *option)
	return option, nil
}

func (m *Catalog) UpdateOption(ctx context.Context, option *tables.Option) (*tables.Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.Options {
		if o.ID == option.ID {
			m.Options[i] = *option
			return option, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Catalog) DeleteOption(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.Options {
		if o.ID == id {
			m.Options = slices.Delete(m.Options, i, i+1)
			return nil
		}
	}
	return lib.ErrNotFound
}

func (m *Catalog) CarColors(ctx context.Context, carID int64) ([]tables.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.Color{}
	for _, c := range m.Colors {
		if slices.Contains(m.CarColorIDs[carID], c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Catalog) CarOptions(ctx context.Context, carID int64) ([]tables.Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.Option{}
	for _, o := range m.Options {
		if slices.Contains(m.CarOptionIDs[carID], o.ID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Catalog) ReplaceCarColors(ctx context.Context, carID int64, colorIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CarColorIDs[carID] = slices.Clone(colorIDs)
	return nil
}

func (m *Catalog) ReplaceCarOptions(ctx context.Context, carID int64, optionIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CarOptionIDs[carID] = slices.Clone(optionIDs)
	return nil
}

type Quotes struct {
	mu        sync.Mutex
	Rows      map[uuid.UUID]tables.Quote
	Conflicts int // Create reports a reference conflict this many times first

	catalog *Catalog
	users   *Users
}

// NewQuotes keeps quotes in memory. Reads join car display fields from catalog and,
// for the admin listing, the owner from users. Either may be nil.
func NewQuotes(catalog *Catalog, users *Users) *Quotes {
	return &Quotes{Rows: map[uuid.UUID]tables.Quote{}, catalog: catalog, users: users}
}

// joined attaches the car and owner the way the SQL store joins them in.
func (m *Quotes) joined(q tables.Quote, withUser bool) tables.Quote {
	q.Car, q.User = nil, nil
	if m.catalog != nil {
		m.catalog.mu.Lock()
		if c, ok := m.catalog.Cars[q.CarID]; ok {
			q.Car = &c
		}
		m.catalog.mu.Unlock()
	}
	if withUser && m.users != nil && q.UserID != nil {
		m.users.mu.Lock()
		if u, ok := m.users.Rows[*q.UserID]; ok {
			q.User = &u
		}
		m.users.mu.Unlock()
	}
	return q
}

func (m *Quotes) Create(ctx context.Context, quote *tables.Quote) (*tables.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Conflicts > 0 {
		m.Conflicts--
		return nil, lib.ErrConflict
	}
	for _, q := range m.Rows {
		if q.Reference == quote.Reference {
			return nil, lib.ErrConflict
		}
	}
	if quote.UserID != nil && m.users != nil {
		m.users.mu.Lock()
		_, ok := m.users.Rows[*quote.UserID]
		m.users.mu.Unlock()
		if !ok {
			return nil, lib.ErrMissingReference
		}
	}
	now := time.Now()
	stored := *quote
	stored.CreatedAt, stored.UpdatedAt = now, now
	for i, o := range stored.Options {
		o.QuoteID = stored.ID
		o.Position = i
	}
	m.Rows[stored.ID] = stored
	stored = m.joined(stored, false)
	return &stored, nil
}

func (m *Quotes) Get(ctx context.Context, id uuid.UUID) (*tables.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.Rows[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	q = m.joined(q, false)
	return &q, nil
}

func (m *Quotes) ListByUser(ctx context.Context, userID uuid.UUID) ([]tables.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.Quote{}
	for _, q := range m.Rows {
		if q.IsOwnedBy(userID) {
			out = append(out, m.joined(q, false))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Quotes) List(ctx context.Context, f store.QuoteFilter) (*database.PaginationResult[tables.Quote], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.Quote{}
	for _, q := range m.Rows {
		if f.CarID != nil && q.CarID != *f.CarID {
			continue
		}
		if f.UserID != nil && !q.IsOwnedBy(*f.UserID) {
			continue
		}
		if f.CreatedAfter != nil && q.CreatedAt.Before(*f.CreatedAfter) {
			continue
		}
		if f.CreatedBefore != nil && q.CreatedAt.After(*f.CreatedBefore) {
			continue
		}
		out = append(out, m.joined(q, true))
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Ascending {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	p := database.NewPagination(f.Page, f.PageSize, len(out))
	from := min((p.Page-1)*p.PageSize, len(out))
	to := min(from+p.PageSize, len(out))
	return &database.PaginationResult[tables.Quote]{Data: out[from:to], Pagination: p}, nil
}

func (m *Quotes) Replace(ctx context.Context, quote *tables.Quote) (*tables.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Rows[quote.ID]; !ok {
		return nil, lib.ErrNotFound
	}
	stored := *quote
	stored.Car, stored.User = nil, nil
	m.Rows[quote.ID] = stored
	stored = m.joined(stored, false)
	return &stored, nil
}

func (m *Quotes) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Rows[id]; !ok {
		return lib.ErrNotFound
	}
	delete(m.Rows, id)
	return nil
}

type Users struct {
	mu   sync.Mutex
	Rows map[uuid.UUID]tables.User
}

func NewUsers(users ...tables.User) *Users {
	m := &Users{Rows: map[uuid.UUID]tables.User{}}
	for _, u := range users {
		m.Rows[u.ID] = u
	}
	return m
}

func (m *Users) GetByID(ctx context.Context, id uuid.UUID) (*tables.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Rows[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return &u, nil
}

func (m *Users) GetByEmail(ctx context.Context, email string) (*tables.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Users) Create(ctx context.Context, user *tables.User) (*tables.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Rows {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, lib.ErrConflict
		}
	}
	stored := *user
	stored.CreatedAt = time.Now()
	m.Rows[stored.ID] = stored
	return &stored, nil
}

func (m *Users) List(ctx context.Context) ([]tables.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.User{}
	for _, u := range m.Rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Users) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*tables.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Rows[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	for _, other := range m.Rows {
		if other.ID != id && strings.EqualFold(other.Email, email) {
			return nil, lib.ErrConflict
		}
	}
	u.Name, u.Email = name, email
	m.Rows[id] = u
	return &u, nil
}

func (m *Users) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*tables.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Rows[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	u.IsAdmin = isAdmin
	m.Rows[id] = u
	return &u, nil
}

func (m *Users) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Rows[id]; !ok {
		return lib.ErrNotFound
	}
	delete(m.Rows, id)
	return nil
}

func (m *Users) CountAdmins(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.Rows {
		if u.IsAdmin {
			n++
		}
	}
	return n, nil
}

// Blacklist revokes token ids in memory. Setting Err makes lookups fail.
type Blacklist struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]time.Time
	Err     error
}

func NewBlacklist() *Blacklist {
	return &Blacklist{revoked: map[uuid.UUID]time.Time{}}
}

func (m *Blacklist) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = exp
	return nil
}

func (m *Blacklist) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.revoked[jti]
	return ok, nil
}

// CatalogCache stores catalog entries as JSON, the same shape the Redis cache uses.
type CatalogCache struct {
	mu          sync.Mutex
	Entries     map[string][]byte
	Invalidated int
}

func NewCatalogCache() *CatalogCache {
	return &CatalogCache{Entries: map[string][]byte{}}
}

func (m *CatalogCache) GetCatalogEntry(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *CatalogCache) SetCatalogEntry(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries[key] = data
	return nil
}

func (m *CatalogCache) InvalidateCatalog(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = map[string][]byte{}
	m.Invalidated++
	return nil
}

type Content struct {
	mu        sync.Mutex
	Brands    []tables.Brand
	Showrooms []tables.Showroom
	Faqs      []tables.Faq
	nextID    int64
}

func NewContent() *Content {
	return &Content{}
}

func (m *Content) ListBrands(ctx context.Context) ([]tables.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Brands), nil
}

func (m *Content) GetBrand(ctx context.Context, id int64) (*tables.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Brands {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Content) CreateBrand(ctx context.Context, brand *tables.Brand) (*tables.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	brand.ID = m.nextID
	m.Brands = append(m.Brands, *brand)
	return brand, nil
}

func (m *Content) UpdateBrand(ctx context.Context, brand *tables.Brand) (*tables.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.Brands {
		if b.ID == brand.ID {
			m.Brands[i] = *brand
			return brand, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Content) DeleteBrand(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.Brands {
		if b.ID == id {
			m.Brands = slices.Delete(m.Brands, i, i+1)
			return nil
		}
	}
	return lib.ErrNotFound
}

func (m *Content) ListShowrooms(ctx context.Context, region string) ([]tables.Showroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.Showroom{}
	for _, s := range m.Showrooms {
		if region == "" || s.Region == region {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Content) GetShowroom(ctx context.Context, id int64) (*tables.Showroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.Showrooms {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Content) CreateShowroom(ctx context.Context, showroom *tables.Showroom) (*tables.Showroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	showroom.ID = m.nextID
	m.Showrooms = append(m.Showrooms, *showroom)
	return showroom, nil
}

func (m *Content) UpdateShowroom(ctx context.Context, showroom *tables.Showroom) (*tables.Showroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.Showrooms {
		if s.ID == showroom.ID {
			m.Showrooms[i] = *showroom
			return showroom, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Content) DeleteShowroom(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.Showrooms {
		if s.ID == id {
			m.Showrooms = slices.Delete(m.Showrooms, i, i+1)
			return nil
		}
	}
	return lib.ErrNotFound
}

func (m *Content) ListFaqs(ctx context.Context, category string, activeOnly bool) ([]tables.Faq, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []tables.Faq{}
	for _, f := range m.Faqs {
		if activeOnly && !f.IsActive {
			continue
		}
		if category != "" && f.Category != category {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Content) GetFaq(ctx context.Context, id int64) (*tables.Faq, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.Faqs {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Content) CreateFaq(ctx context.Context, faq *tables.Faq) (*tables.Faq, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	faq.ID = m.nextID
	m.Faqs = append(m.Faqs, *faq)
	return faq, nil
}

func (m *Content) UpdateFaq(ctx context.Context, faq *tables.Faq) (*tables.Faq, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.Faqs {
		if f.ID == faq.ID {
			m.Faqs[i] = *faq
			return faq, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (m *Content) DeleteFaq(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.Faqs {
		if f.ID == id {
			m.Faqs = slices.Delete(m.Faqs, i, i+1)
			return nil
		}
	}
	return lib.ErrNotFound
}
