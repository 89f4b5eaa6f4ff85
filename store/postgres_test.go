package store

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// postgresDB connects to TEST_DATABASE_URL and creates the schema there.
// Tests using it are skipped when the variable is not set.
func postgresDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := database.Wrap(bun.NewDB(sqldb, pgdialect.New()), &structs.DatabaseConfig{AcquireTimeout: 10 * time.Second})
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, database.CreateSchema(ctx, db.DB))
	return db
}

// suffix keeps unique columns apart between runs against the same database.
func suffix() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

type catalogFixture struct {
	car    *tables.Car
	color  *tables.Color
	navi   *tables.Option
	seats  *tables.Option
	remove func()
}

func seedCatalog(t *testing.T, ctx context.Context, catalog *CatalogStore) *catalogFixture {
	t.Helper()
	sfx := suffix()

	car, err := catalog.CreateCar(ctx, &tables.Car{Name: "Sedan " + sfx, Brand: "Hyundai", BasePrice: 30_000_000}, []string{"ABS", "Lane assist"})
	require.NoError(t, err)
	color, err := catalog.CreateColor(ctx, &tables.Color{Code: "PEARL" + sfx, Name: "Pearl White", Hex: "#F5F5F5", Price: 500_000})
	require.NoError(t, err)
	navi, err := catalog.CreateOption(ctx, &tables.Option{Code: "NAVI" + sfx, Name: "Navigation", Price: 300_000})
	require.NoError(t, err)
	seats, err := catalog.CreateOption(ctx, &tables.Option{Code: "SEATS" + sfx, Name: "Heated seats", Price: 800_000})
	require.NoError(t, err)

	return &catalogFixture{
		car: car, color: color, navi: navi, seats: seats,
		remove: func() {
			_ = catalog.DeleteCar(ctx, car.ID)
			_ = catalog.DeleteColor(ctx, color.ID)
			_ = catalog.DeleteOption(ctx, navi.ID)
			_ = catalog.DeleteOption(ctx, seats.ID)
		},
	}
}

func quoteFor(f *catalogFixture, owner *uuid.UUID, options ...*tables.Option) *tables.Quote {
	q := &tables.Quote{
		ID:        uuid.New(),
		Reference: "Q-" + suffix()[:6],
		UserID:    owner,
		CarID:     f.car.ID,
		ColorCode: f.color.Code,
		ColorName: f.color.Name,
		Subtotal:  f.car.BasePrice + f.color.Price,
		Total:     f.car.BasePrice + f.color.Price,
	}
	for _, o := range options {
		q.Options = append(q.Options, &tables.QuoteOption{OptionCode: o.Code, OptionName: o.Name, OptionPrice: o.Price})
	}
	return q
}

func TestPostgresCatalogStore(t *testing.T) {
	db := postgresDB(t)
	ctx := context.Background()
	catalog := NewCatalogStore(db)
	f := seedCatalog(t, ctx, catalog)
	t.Cleanup(f.remove)

	car, err := catalog.GetCar(ctx, f.car.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABS", "Lane assist"}, car.Features)

	car.Description = "Updated"
	car, err = catalog.UpdateCar(ctx, car, []string{"Lane assist"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lane assist"}, car.Features)

	require.NoError(t, catalog.ReplaceCarColors(ctx, f.car.ID, []int64{f.color.ID}))
	colors, err := catalog.CarColors(ctx, f.car.ID)
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, f.color.Code, colors[0].Code)

	require.NoError(t, catalog.ReplaceCarColors(ctx, f.car.ID, []int64{}))
	colors, err = catalog.CarColors(ctx, f.car.ID)
	require.NoError(t, err)
	assert.Empty(t, colors)

	require.NoError(t, catalog.ReplaceCarOptions(ctx, f.car.ID, []int64{f.seats.ID, f.navi.ID}))
	options, err := catalog.CarOptions(ctx, f.car.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, f.navi.ID, options[0].ID)

	err = catalog.ReplaceCarColors(ctx, f.car.ID, []int64{-1})
	assert.ErrorIs(t, err, lib.ErrMissingReference)

	_, err = catalog.CreateColor(ctx, &tables.Color{Code: f.color.Code, Name: "Duplicate", Hex: "#000000"})
	assert.ErrorIs(t, err, lib.ErrConflict)
}

func TestPostgresQuoteStore(t *testing.T) {
	db := postgresDB(t)
	ctx := context.Background()
	catalog := NewCatalogStore(db)
	quotes := NewQuoteStore(db)
	users := NewUserStore(db)

	f := seedCatalog(t, ctx, catalog)
	t.Cleanup(f.remove)

	user, err := users.Create(ctx, &tables.User{ID: uuid.New(), Email: strings.ToLower(suffix()) + "@example.com", Name: "Owner", PasswordHash: "x"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = users.Delete(ctx, user.ID) })

	t.Run("create keeps option order and joins the car", func(t *testing.T) {
		created, err := quotes.Create(ctx, quoteFor(f, nil, f.seats, f.navi))
		require.NoError(t, err)
		t.Cleanup(func() { _ = quotes.Delete(ctx, created.ID) })

		assert.Nil(t, created.UserID)
		assert.Equal(t, []string{f.seats.Code, f.navi.Code}, created.OptionCodes())
		require.NotNil(t, created.Car)
		assert.Equal(t, f.car.Name, created.Car.Name)
	})

	t.Run("replace swaps the option set", func(t *testing.T) {
		created, err := quotes.Create(ctx, quoteFor(f, &user.ID, f.navi))
		require.NoError(t, err)
		t.Cleanup(func() { _ = quotes.Delete(ctx, created.ID) })

		replacement := quoteFor(f, &user.ID, f.seats)
		replacement.ID = created.ID
		replacement.Reference = created.Reference
		replacement.UpdatedAt = time.Now()

		updated, err := quotes.Replace(ctx, replacement)
		require.NoError(t, err)
		assert.Equal(t, []string{f.seats.Code}, updated.OptionCodes())
		assert.Equal(t, created.Reference, updated.Reference)

		missing := quoteFor(f, nil)
		_, err = quotes.Replace(ctx, missing)
		assert.ErrorIs(t, err, lib.ErrNotFound)
	})

	t.Run("list by owner is newest first", func(t *testing.T) {
		first, err := quotes.Create(ctx, quoteFor(f, &user.ID))
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
		second, err := quotes.Create(ctx, quoteFor(f, &user.ID))
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = quotes.Delete(ctx, first.ID)
			_ = quotes.Delete(ctx, second.ID)
		})

		mine, err := quotes.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(mine), 2)
		assert.Equal(t, second.ID, mine[0].ID)
		require.NotNil(t, mine[0].Car)
	})

	t.Run("delete removes quote and options", func(t *testing.T) {
		created, err := quotes.Create(ctx, quoteFor(f, nil, f.navi))
		require.NoError(t, err)

		require.NoError(t, quotes.Delete(ctx, created.ID))
		_, err = quotes.Get(ctx, created.ID)
		assert.ErrorIs(t, err, lib.ErrNotFound)
		assert.ErrorIs(t, quotes.Delete(ctx, created.ID), lib.ErrNotFound)

		n, err := quotes.optionRows(created.ID).Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("unknown owner is a missing reference", func(t *testing.T) {
		ghost := uuid.New()
		_, err := quotes.Create(ctx, quoteFor(f, &ghost))
		assert.ErrorIs(t, err, lib.ErrMissingReference)
		assert.False(t, lib.IsConflict(err))
	})
}
