package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/store"
	"car_configurator_server/store/memory"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteFixture struct {
	svc     *QuoteService
	quotes  *memory.Quotes
	catalog *memory.Catalog
	cfg     *structs.Config
}

func newQuoteFixture() *quoteFixture {
	cfg := testConfig()
	catalog := memory.NewSeededCatalog()
	quotes := memory.NewQuotes(catalog, nil)
	return &quoteFixture{
		svc:     NewQuoteService(testLogger(), cfg, quotes, catalog, memory.NewUsers(), nil),
		quotes:  quotes,
		catalog: catalog,
		cfg:     cfg,
	}
}

func referenceRequest() *structs.QuoteRequest {
	return &structs.QuoteRequest{
		CarID:          1,
		ColorCode:      "PEARL",
		OptionCodes:    []string{"SUNROOF", "SEATS"},
		DiscountName:   "Launch",
		DiscountAmount: 1_000_000,
		DeliveryRegion: "Seoul",
		DeliveryFee:    150_000,
		Subtotal:       32_500_000,
		Total:          31_650_000,
	}
}

var referencePattern = regexp.MustCompile(`^Q-[A-HJ-NP-Z2-9]{6}$`)

func TestQuoteCreateRoundTrip(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	owner := &structs.Caller{UserID: uuid.New()}

	created, err := f.svc.Create(ctx, referenceRequest(), owner)
	require.NoError(t, err)
	assert.Regexp(t, referencePattern, created.Reference)
	require.NotNil(t, created.UserID)
	assert.Equal(t, owner.UserID, *created.UserID)

	got, err := f.svc.GetByID(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CarID)
	assert.Equal(t, "PEARL", got.ColorCode)
	assert.Equal(t, "Pearl White", got.ColorName)
	assert.Equal(t, int64(500_000), got.ColorPrice)
	assert.Equal(t, []string{"SUNROOF", "SEATS"}, got.OptionCodes())
	assert.Equal(t, int64(32_500_000), got.Subtotal)
	assert.Equal(t, int64(31_650_000), got.Total)
	assert.Equal(t, "Launch", got.DiscountName)
	assert.Equal(t, "Seoul", got.DeliveryRegion)
}

func TestQuoteCreateAnonymous(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, referenceRequest(), nil)
	require.NoError(t, err)
	assert.Nil(t, created.UserID)

	// Anonymous quotes are readable by anyone holding the id.
	_, err = f.svc.GetByID(ctx, created.ID, nil)
	assert.NoError(t, err)
	_, err = f.svc.GetByID(ctx, created.ID, &structs.Caller{UserID: uuid.New()})
	assert.NoError(t, err)
}

func TestQuoteCreateDeduplicatesOptionCodes(t *testing.T) {
	f := newQuoteFixture()
	req := referenceRequest()
	req.OptionCodes = []string{"SUNROOF", "SEATS", "SUNROOF"}

	created, err := f.svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"SUNROOF", "SEATS"}, created.OptionCodes())
}

func TestQuoteCreateRetriesReferenceConflict(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.Conflicts = 2

	created, err := f.svc.Create(context.Background(), referenceRequest(), nil)
	require.NoError(t, err)
	assert.Regexp(t, referencePattern, created.Reference)
}

func TestQuoteCreateGivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newQuoteFixture()
	f.quotes.Conflicts = maxReferenceAttempts

	_, err := f.svc.Create(context.Background(), referenceRequest(), nil)
	assert.ErrorIs(t, err, lib.ErrConflict)
}

func TestQuoteCreateForDeletedOwner(t *testing.T) {
	catalog := memory.NewSeededCatalog()
	users := memory.NewUsers()
	quotes := memory.NewQuotes(catalog, users)
	svc := NewQuoteService(testLogger(), testConfig(), quotes, catalog, users, nil)

	_, err := svc.Create(context.Background(), referenceRequest(), &structs.Caller{UserID: uuid.New()})
	assert.ErrorIs(t, err, lib.ErrUnauthenticated)
	assert.False(t, lib.IsConflict(err))
	assert.Empty(t, quotes.Rows)
}

func TestQuoteCreateJoinsCarForDisplay(t *testing.T) {
	catalog := memory.NewSeededCatalog()
	users := memory.NewUsers(tables.User{ID: uuid.New(), Email: "owner@example.com"})
	quotes := memory.NewQuotes(catalog, users)
	svc := NewQuoteService(testLogger(), testConfig(), quotes, catalog, users, nil)

	var owner uuid.UUID
	for id := range users.Rows {
		owner = id
	}
	created, err := svc.Create(context.Background(), referenceRequest(), &structs.Caller{UserID: owner})
	require.NoError(t, err)
	require.NotNil(t, created.Car)
	assert.Equal(t, "Sedan", created.Car.Name)

	mine, err := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Car)
	assert.Equal(t, "Hyundai", mine[0].Car.Brand)

	page, err := svc.ListAll(context.Background(), store.QuoteFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Data[0].User)
	assert.Equal(t, "owner@example.com", page.Data[0].User.Email)
}

func TestQuoteCreateRejectsUnknownReferences(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*structs.QuoteRequest)
		field string
	}{
		{"unknown car", func(r *structs.QuoteRequest) { r.CarID = 999 }, "carId"},
		{"unknown color", func(r *structs.QuoteRequest) { r.ColorCode = "CHROME" }, "colorCode"},
		{"unknown option", func(r *structs.QuoteRequest) { r.OptionCodes = []string{"SUNROOF", "JETPACK"} }, "optionCodes[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuoteFixture()
			req := referenceRequest()
			tt.edit(req)

			_, err := f.svc.Create(context.Background(), req, nil)
			var verr *lib.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Empty(t, f.quotes.Rows)
		})
	}
}

func TestQuoteVerifyTotals(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	f.cfg.Quotes.VerifyTotals = true

	_, err := f.svc.Create(ctx, referenceRequest(), nil)
	require.NoError(t, err)

	req := referenceRequest()
	req.Total = 1
	_, err = f.svc.Create(ctx, req, nil)
	var verr *lib.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "total", verr.Errors[0].Field)

	// Without verification the client's figures are stored as sent.
	f.cfg.Quotes.VerifyTotals = false
	created, err := f.svc.Create(ctx, req, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Total)
}

func TestQuoteSnapshotSurvivesCatalogChange(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, referenceRequest(), nil)
	require.NoError(t, err)

	f.catalog.Colors[1].Price = 900_000
	f.catalog.Colors[1].Name = "Renamed"

	got, err := f.svc.GetByID(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), got.ColorPrice)
	assert.Equal(t, "Pearl White", got.ColorName)
}

func TestQuoteOwnership(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	owner := &structs.Caller{UserID: uuid.New()}
	stranger := &structs.Caller{UserID: uuid.New()}
	admin := &structs.Caller{UserID: uuid.New(), IsAdmin: true}

	created, err := f.svc.Create(ctx, referenceRequest(), owner)
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, lib.ErrForbidden)
	_, err = f.svc.GetByID(ctx, created.ID, nil)
	assert.ErrorIs(t, err, lib.ErrForbidden)
	_, err = f.svc.GetByID(ctx, created.ID, admin)
	assert.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, referenceRequest(), nil)
	assert.ErrorIs(t, err, lib.ErrUnauthenticated)
	_, err = f.svc.Update(ctx, created.ID, referenceRequest(), stranger)
	assert.ErrorIs(t, err, lib.ErrForbidden)

	err = f.svc.Delete(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, lib.ErrForbidden)
	assert.Len(t, f.quotes.Rows, 1)

	require.NoError(t, f.svc.Delete(ctx, created.ID, owner))
	_, err = f.svc.GetByID(ctx, created.ID, owner)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestAnonymousQuoteOnlyAdminMayMutate(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, referenceRequest(), nil)
	require.NoError(t, err)

	err = f.svc.Delete(ctx, created.ID, &structs.Caller{UserID: uuid.New()})
	assert.ErrorIs(t, err, lib.ErrForbidden)

	err = f.svc.Delete(ctx, created.ID, &structs.Caller{UserID: uuid.New(), IsAdmin: true})
	assert.NoError(t, err)
}

func TestQuoteUpdateReplacesConfiguration(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	owner := &structs.Caller{UserID: uuid.New()}

	created, err := f.svc.Create(ctx, referenceRequest(), owner)
	require.NoError(t, err)

	req := &structs.QuoteRequest{
		CarID:          2,
		ColorCode:      "BLACK",
		OptionCodes:    []string{"SUNROOF"},
		DiscountAmount: 2_000_000,
		DeliveryFee:    200_000,
		Subtotal:       46_200_000,
		Total:          44_400_000,
	}

	updated, err := f.svc.Update(ctx, created.ID, req, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Reference, updated.Reference)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, int64(2), updated.CarID)
	assert.Equal(t, []string{"SUNROOF"}, updated.OptionCodes())
	assert.Empty(t, updated.DiscountName)

	// Applying the same body again changes nothing.
	again, err := f.svc.Update(ctx, created.ID, req, owner)
	require.NoError(t, err)
	assert.Equal(t, updated.Total, again.Total)
	assert.Equal(t, updated.OptionCodes(), again.OptionCodes())
	assert.Len(t, f.quotes.Rows, 1)
}

func TestQuoteUpdateMissing(t *testing.T) {
	f := newQuoteFixture()
	_, err := f.svc.Update(context.Background(), uuid.New(), referenceRequest(), &structs.Caller{UserID: uuid.New()})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestQuoteListByOwner(t *testing.T) {
	f := newQuoteFixture()
	ctx := context.Background()
	alice := &structs.Caller{UserID: uuid.New()}
	bob := &structs.Caller{UserID: uuid.New()}

	for range 2 {
		_, err := f.svc.Create(ctx, referenceRequest(), alice)
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, referenceRequest(), bob)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, referenceRequest(), nil)
	require.NoError(t, err)

	mine, err := f.svc.ListByOwner(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := f.svc.ListAll(ctx, store.QuoteFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Pagination.Total)
}
