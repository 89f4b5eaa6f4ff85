package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/store/memory"
	"car_configurator_server/structs"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogReadsAreCached(t *testing.T) {
	catalog := memory.NewSeededCatalog()
	cache := memory.NewCatalogCache()
	svc := NewCatalogService(testLogger(), catalog, cache)
	ctx := context.Background()

	cars, err := svc.ListCars(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Contains(t, cache.Entries, "cars")

	// A stale entry keeps being served until a write invalidates it.
	delete(catalog.Cars, 2)
	cars, err = svc.ListCars(ctx)
	require.NoError(t, err)
	assert.Len(t, cars, 2)

	_, err = svc.CreateColor(ctx, &structs.ColorRequest{Code: "RED", Name: "Red", Hex: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Invalidated)

	cars, err = svc.ListCars(ctx)
	require.NoError(t, err)
	assert.Len(t, cars, 1)
}

func TestCatalogWithoutCache(t *testing.T) {
	svc := NewCatalogService(testLogger(), memory.NewSeededCatalog(), nil)

	colors, err := svc.ListColors(context.Background())
	require.NoError(t, err)
	assert.Len(t, colors, 2)
}

func TestCatalogCarAvailability(t *testing.T) {
	svc := NewCatalogService(testLogger(), memory.NewSeededCatalog(), nil)
	ctx := context.Background()

	colors, err := svc.GetCarColors(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, colors, 2)

	options, err := svc.GetCarOptions(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, options)

	_, err = svc.GetCarColors(ctx, 999)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestUpdateCarColorsReplacesMembership(t *testing.T) {
	catalog := memory.NewSeededCatalog()
	svc := NewCatalogService(testLogger(), catalog, nil)
	ctx := context.Background()

	colors, err := svc.UpdateCarColors(ctx, 1, []int64{2, 2})
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, "PEARL", colors[0].Code)
	assert.Equal(t, []int64{2}, catalog.CarColorIDs[1])

	colors, err = svc.UpdateCarColors(ctx, 1, []int64{})
	require.NoError(t, err)
	assert.Empty(t, colors)
}

func TestUpdateCarOptionsRejectsUnknownIDs(t *testing.T) {
	catalog := memory.NewSeededCatalog()
	svc := NewCatalogService(testLogger(), catalog, nil)

	_, err := svc.UpdateCarOptions(context.Background(), 1, []int64{1, 42})
	var verr *lib.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "optionIds[1]", verr.Errors[0].Field)
	assert.Equal(t, []int64{1, 2}, catalog.CarOptionIDs[1])

	_, err = svc.UpdateCarOptions(context.Background(), 999, []int64{1})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCatalogCarLifecycle(t *testing.T) {
	svc := NewCatalogService(testLogger(), memory.NewSeededCatalog(), memory.NewCatalogCache())
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, &structs.CarRequest{Name: " Coupe ", BasePrice: 38_000_000, Features: []string{"Turbo", "LED"}})
	require.NoError(t, err)
	assert.Equal(t, "Coupe", car.Name)
	assert.Equal(t, []string{"Turbo", "LED"}, car.Features)

	updated, err := svc.UpdateCar(ctx, car.ID, &structs.CarRequest{Name: "Coupe GT", BasePrice: 41_000_000, Features: []string{"Turbo"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Turbo"}, updated.Features)

	require.NoError(t, svc.DeleteCar(ctx, car.ID))
	_, err = svc.GetCar(ctx, car.ID)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = svc.UpdateCar(ctx, car.ID, &structs.CarRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCatalogDuplicateColorCode(t *testing.T) {
	svc := NewCatalogService(testLogger(), memory.NewSeededCatalog(), nil)

	_, err := svc.CreateColor(context.Background(), &structs.ColorRequest{Code: "BLACK", Name: "Jet", Hex: "#111111"})
	assert.ErrorIs(t, err, lib.ErrConflict)
}
