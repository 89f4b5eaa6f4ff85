// Package store persists the catalog, quotes, users and site content through bun.
package store

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"car_configurator_server/structs/tables"
	"context"

	"github.com/uptrace/bun"
)

type CatalogStore struct {
	db *database.DB
}

func NewCatalogStore(db *database.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func orderFeatures(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("cf.id ASC")
}

func (s *CatalogStore) cars() *database.QueryBuilder[tables.Car] {
	return database.Query[tables.Car](s.db).Relation("FeatureRows", orderFeatures)
}

func (s *CatalogStore) ListCars(ctx context.Context) ([]tables.Car, error) {
	cars, err := s.cars().OrderBy("c.id", database.ASC).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	for i := range cars {
		cars[i].FillFeatures()
	}
	return cars, nil
}

func (s *CatalogStore) GetCar(ctx context.Context, id int64) (*tables.Car, error) {
	car, err := s.cars().Where("c.id", id).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if car == nil {
		return nil, lib.ErrNotFound
	}
	car.FillFeatures()
	return car, nil
}

func (s *CatalogStore) CarExists(ctx context.Context, id int64) (bool, error) {
	ok, err := database.Query[tables.Car](s.db).Where("c.id", id).Exists(ctx)
	return ok, lib.MapPgError(err)
}

// CreateCar inserts the car and its features in one transaction.
func (s *CatalogStore) CreateCar(ctx context.Context, car *tables.Car, features []string) (*tables.Car, error) {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := database.Query[tables.Car](s.db).Tx(tx).Insert(ctx, car); err != nil {
			return err
		}
		return insertFeatures(ctx, s.db, tx, car.ID, features)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return s.GetCar(ctx, car.ID)
}

// UpdateCar overwrites the car columns and replaces its feature list wholesale.
func (s *CatalogStore) UpdateCar(ctx context.Context, car *tables.Car, features []string) (*tables.Car, error) {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		n, err := database.Query[tables.Car](s.db).Tx(tx).UpdateModel(ctx, car,
			"name", "brand", "base_price", "image_url", "engine", "power",
			"fuel_efficiency", "safety_rating", "dimensions", "description",
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return lib.ErrNotFound
		}

		if _, err := featureRows(s.db, car.ID).Tx(tx).Delete(ctx); err != nil {
			return err
		}
		return insertFeatures(ctx, s.db, tx, car.ID, features)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return s.GetCar(ctx, car.ID)
}

func featureRows(db *database.DB, carID int64) *database.QueryBuilder[tables.CarFeature] {
	return database.Query[tables.CarFeature](db).Where("car_id", carID)
}

func insertFeatures(ctx context.Context, db *database.DB, tx bun.Tx, carID int64, features []string) error {
	if len(features) == 0 {
		return nil
	}
	rows := make([]tables.CarFeature, 0, len(features))
	for _, f := range features {
		rows = append(rows, tables.CarFeature{CarID: carID, FeatureName: f})
	}
	_, err := database.Query[tables.CarFeature](db).Tx(tx).InsertMany(ctx, rows)
	return err
}

// DeleteCar removes the car. Features and association rows cascade.
func (s *CatalogStore) DeleteCar(ctx context.Context, id int64) error {
	return deleteByID[tables.Car](ctx, s.db, "id", id)
}

func (s *CatalogStore) ListColors(ctx context.Context) ([]tables.Color, error) {
	colors, err := database.Query[tables.Color](s.db).OrderBy("col.id", database.ASC).All(ctx)
	return colors, lib.MapPgError(err)
}

func (s *CatalogStore) GetColor(ctx context.Context, id int64) (*tables.Color, error) {
	return firstOrNotFound(ctx, database.Query[tables.Color](s.db).Where("col.id", id))
}

func (s *CatalogStore) GetColorByCode(ctx context.Context, code string) (*tables.Color, error) {
	return firstOrNotFound(ctx, database.Query[tables.Color](s.db).Where("col.code", code))
}

func (s *CatalogStore) CreateColor(ctx context.Context, color *tables.Color) (*tables.Color, error) {
	created, err := database.Query[tables.Color](s.db).Insert(ctx, color)
	return created, lib.MapPgError(err)
}

func (s *CatalogStore) UpdateColor(ctx context.Context, color *tables.Color) (*tables.Color, error) {
	return updateModel(ctx, s.db, color)
}

func (s *CatalogStore) DeleteColor(ctx context.Context, id int64) error {
	return deleteByID[tables.Color](ctx, s.db, "id", id)
}

func (s *CatalogStore) ListOptions(ctx context.Context) ([]tables.Option, error) {
	options, err := database.Query[tables.Option](s.db).OrderBy("opt.id", database.ASC).All(ctx)
	return options, lib.MapPgError(err)
}

func (s *CatalogStore) GetOption(ctx context.Context, id int64) (*tables.Option, error) {
	return firstOrNotFound(ctx, database.Query[tables.Option](s.db).Where("opt.id", id))
}

// OptionsByCodes returns the catalog options whose code is in codes, in catalog order.
func (s *CatalogStore) OptionsByCodes(ctx context.Context, codes []string) ([]tables.Option, error) {
	if len(codes) == 0 {
		return []tables.Option{}, nil
	}
	options, err := s.optionsByCodes(codes).All(ctx)
	return options, lib.MapPgError(err)
}

func (s *CatalogStore) optionsByCodes(codes []string) *database.QueryBuilder[tables.Option] {
	return database.Query[tables.Option](s.db).
		WhereIn("opt.code", codes).
		OrderBy("opt.id", database.ASC)
}

func (s *CatalogStore) CreateOption(ctx context.Context, option *tables.Option) (*tables.Option, error) {
	created, err := database.Query[tables.Option](s.db).Insert(ctx, option)
	return created, lib.MapPgError(err)
}

func (s *CatalogStore) UpdateOption(ctx context.Context, option *tables.Option) (*tables.Option, error) {
	return updateModel(ctx, s.db, option)
}

func (s *CatalogStore) DeleteOption(ctx context.Context, id int64) error {
	return deleteByID[tables.Option](ctx, s.db, "id", id)
}

// CarColors lists the colors offered for a car.
func (s *CatalogStore) CarColors(ctx context.Context, carID int64) ([]tables.Color, error) {
	colors, err := s.colorsForCar(carID).All(ctx)
	return colors, lib.MapPgError(err)
}

func (s *CatalogStore) colorsForCar(carID int64) *database.QueryBuilder[tables.Color] {
	return database.Query[tables.Color](s.db).
		WhereRaw("col.id IN (SELECT cc.color_id FROM car_colors AS cc WHERE cc.car_id = ?)", carID).
		OrderBy("col.id", database.ASC)
}

// CarOptions lists the options offered for a car.
func (s *CatalogStore) CarOptions(ctx context.Context, carID int64) ([]tables.Option, error) {
	options, err := s.optionsForCar(carID).All(ctx)
	return options, lib.MapPgError(err)
}

func (s *CatalogStore) optionsForCar(carID int64) *database.QueryBuilder[tables.Option] {
	return database.Query[tables.Option](s.db).
		WhereRaw("opt.id IN (SELECT co.option_id FROM car_options AS co WHERE co.car_id = ?)", carID).
		OrderBy("opt.id", database.ASC)
}

// ReplaceCarColors swaps the full color membership of a car inside one transaction.
func (s *CatalogStore) ReplaceCarColors(ctx context.Context, carID int64, colorIDs []int64) error {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := database.Query[tables.CarColor](s.db).Tx(tx).Where("car_id", carID).Delete(ctx); err != nil {
			return err
		}
		if len(colorIDs) == 0 {
			return nil
		}
		rows := make([]tables.CarColor, 0, len(colorIDs))
		for _, id := range colorIDs {
			rows = append(rows, tables.CarColor{CarID: carID, ColorID: id})
		}
		_, err := database.Query[tables.CarColor](s.db).Tx(tx).InsertMany(ctx, rows)
		return err
	})
	return lib.MapPgError(err)
}

// ReplaceCarOptions swaps the full option membership of a car inside one transaction.
func (s *CatalogStore) ReplaceCarOptions(ctx context.Context, carID int64, optionIDs []int64) error {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := database.Query[tables.CarOption](s.db).Tx(tx).Where("car_id", carID).Delete(ctx); err != nil {
			return err
		}
		if len(optionIDs) == 0 {
			return nil
		}
		rows := make([]tables.CarOption, 0, len(optionIDs))
		for _, id := range optionIDs {
			rows = append(rows, tables.CarOption{CarID: carID, OptionID: id})
		}
		_, err := database.Query[tables.CarOption](s.db).Tx(tx).InsertMany(ctx, rows)
		return err
	})
	return lib.MapPgError(err)
}
