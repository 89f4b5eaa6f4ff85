package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"fmt"
	"strings"

	"github.com/MonkyMars/gecho"
)

type CatalogService struct {
	logger *gecho.Logger
	store  CatalogStore
	cache  CatalogCache
}

// NewCatalogService wires the catalog. cache may be nil, in which case every read hits the store.
func NewCatalogService(logger *gecho.Logger, store CatalogStore, cache CatalogCache) *CatalogService {
	return &CatalogService{logger: logger, store: store, cache: cache}
}

// cached serves key from the catalog cache, falling back to load. Cache failures are logged and ignored.
func cached[T any](ctx context.Context, cs *CatalogService, key string, load func() (T, error)) (T, error) {
	var value T
	if cs.cache != nil {
		hit, err := cs.cache.GetCatalogEntry(ctx, key, &value)
		if err != nil {
			cs.logger.Warn("Catalog cache read failed", gecho.Field("key", key), gecho.Field("error", err))
		} else if hit {
			cs.logger.Debug("Catalog cache hit", gecho.Field("key", key))
			return value, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if cs.cache != nil {
		if err := cs.cache.SetCatalogEntry(ctx, key, value); err != nil {
			cs.logger.Warn("Catalog cache write failed", gecho.Field("key", key), gecho.Field("error", err))
		}
	}
	return value, nil
}

func (cs *CatalogService) invalidate(ctx context.Context) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.InvalidateCatalog(ctx); err != nil {
		cs.logger.Warn("Failed to invalidate catalog cache after write", gecho.Field("error", err))
	}
}

func (cs *CatalogService) ListCars(ctx context.Context) ([]tables.Car, error) {
	return cached(ctx, cs, "cars", func() ([]tables.Car, error) {
		return cs.store.ListCars(ctx)
	})
}

func (cs *CatalogService) GetCar(ctx context.Context, id int64) (*tables.Car, error) {
	return cached(ctx, cs, fmt.Sprintf("car:%d", id), func() (*tables.Car, error) {
		return cs.store.GetCar(ctx, id)
	})
}

func (cs *CatalogService) ListColors(ctx context.Context) ([]tables.Color, error) {
	return cached(ctx, cs, "colors", func() ([]tables.Color, error) {
		return cs.store.ListColors(ctx)
	})
}

func (cs *CatalogService) ListOptions(ctx context.Context) ([]tables.Option, error) {
	return cached(ctx, cs, "options", func() ([]tables.Option, error) {
		return cs.store.ListOptions(ctx)
	})
}

func (cs *CatalogService) GetColor(ctx context.Context, id int64) (*tables.Color, error) {
	return cs.store.GetColor(ctx, id)
}

func (cs *CatalogService) GetOption(ctx context.Context, id int64) (*tables.Option, error) {
	return cs.store.GetOption(ctx, id)
}

// GetCarColors lists the colors offered for carID. An unknown car is ErrNotFound.
func (cs *CatalogService) GetCarColors(ctx context.Context, carID int64) ([]tables.Color, error) {
	if err := cs.requireCar(ctx, carID); err != nil {
		return nil, err
	}
	return cached(ctx, cs, fmt.Sprintf("car:%d:colors", carID), func() ([]tables.Color, error) {
		return cs.store.CarColors(ctx, carID)
	})
}

// GetCarOptions lists the options offered for carID. An unknown car is ErrNotFound.
func (cs *CatalogService) GetCarOptions(ctx context.Context, carID int64) ([]tables.Option, error) {
	if err := cs.requireCar(ctx, carID); err != nil {
		return nil, err
	}
	return cached(ctx, cs, fmt.Sprintf("car:%d:options", carID), func() ([]tables.Option, error) {
		return cs.store.CarOptions(ctx, carID)
	})
}

func (cs *CatalogService) requireCar(ctx context.Context, carID int64) error {
	ok, err := cs.store.CarExists(ctx, carID)
	if err != nil {
		return err
	}
	if !ok {
		return lib.ErrNotFound
	}
	return nil
}

func carFromRequest(req *structs.CarRequest) *tables.Car {
	return &tables.Car{
		Name:           strings.TrimSpace(req.Name),
		Brand:          req.Brand,
		BasePrice:      req.BasePrice,
		ImageURL:       req.ImageURL,
		Engine:         req.Engine,
		Power:          req.Power,
		FuelEfficiency: req.FuelEfficiency,
		SafetyRating:   req.SafetyRating,
		Dimensions:     req.Dimensions,
		Description:    req.Description,
	}
}

func (cs *CatalogService) CreateCar(ctx context.Context, req *structs.CarRequest) (*tables.Car, error) {
	car, err := cs.store.CreateCar(ctx, carFromRequest(req), req.Features)
	if err != nil {
		cs.logger.Error("Failed to create car", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, err
	}
	cs.invalidate(ctx)
	cs.logger.Info("Car created", gecho.Field("car_id", car.ID))
	return car, nil
}

// UpdateCar overwrites every field of the car and replaces its feature list.
func (cs *CatalogService) UpdateCar(ctx context.Context, id int64, req *structs.CarRequest) (*tables.Car, error) {
	car := carFromRequest(req)
	car.ID = id

	updated, err := cs.store.UpdateCar(ctx, car, req.Features)
	if err != nil {
		if !lib.IsNotFound(err) {
			cs.logger.Error("Failed to update car", gecho.Field("error", err), gecho.Field("car_id", id))
		}
		return nil, err
	}
	cs.invalidate(ctx)
	return updated, nil
}

func (cs *CatalogService) DeleteCar(ctx context.Context, id int64) error {
	if err := cs.store.DeleteCar(ctx, id); err != nil {
		return err
	}
	cs.invalidate(ctx)
	cs.logger.Info("Car deleted", gecho.Field("car_id", id))
	return nil
}

func (cs *CatalogService) CreateColor(ctx context.Context, req *structs.ColorRequest) (*tables.Color, error) {
	color, err := cs.store.CreateColor(ctx, &tables.Color{
		Code:  strings.TrimSpace(req.Code),
		Name:  req.Name,
		Hex:   req.Hex,
		Price: req.Price,
	})
	if err != nil {
		return nil, err
	}
	cs.invalidate(ctx)
	return color, nil
}

func (cs *CatalogService) UpdateColor(ctx context.Context, id int64, req *structs.ColorRequest) (*tables.Color, error) {
	color, err := cs.store.UpdateColor(ctx, &tables.Color{
		ID:    id,
		Code:  strings.TrimSpace(req.Code),
		Name:  req.Name,
		Hex:   req.Hex,
		Price: req.Price,
	})
	if err != nil {
		return nil, err
	}
	cs.invalidate(ctx)
	return color, nil
}

func (cs *CatalogService) DeleteColor(ctx context.Context, id int64) error {
	if err := cs.store.DeleteColor(ctx, id); err != nil {
		return err
	}
	cs.invalidate(ctx)
	return nil
}

func (cs *CatalogService) CreateOption(ctx context.Context, req *structs.OptionRequest) (*tables.Option, error) {
	option, err := cs.store.CreateOption(ctx, &tables.Option{
		Code:  strings.TrimSpace(req.Code),
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		return nil, err
	}
	cs.invalidate(ctx)
	return option, nil
}

func (cs *CatalogService) UpdateOption(ctx context.Context, id int64, req *structs.OptionRequest) (*tables.Option, error) {
	option, err := cs.store.UpdateOption(ctx, &tables.Option{
		ID:    id,
		Code:  strings.TrimSpace(req.Code),
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		return nil, err
	}
	cs.invalidate(ctx)
	return option, nil
}

func (cs *CatalogService) DeleteOption(ctx context.Context, id int64) error {
	if err := cs.store.DeleteOption(ctx, id); err != nil {
		return err
	}
	cs.invalidate(ctx)
	return nil
}

// UpdateCarColors replaces the car's full color membership. An empty list clears it.
func (cs *CatalogService) UpdateCarColors(ctx context.Context, carID int64, colorIDs []int64) ([]tables.Color, error) {
	if err := cs.requireCar(ctx, carID); err != nil {
		return nil, err
	}

	colors, err := cs.store.ListColors(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(colors))
	for _, c := range colors {
		known[c.ID] = true
	}
	ids, err := checkMembership("colorIds", colorIDs, known)
	if err != nil {
		return nil, err
	}

	if err := cs.store.ReplaceCarColors(ctx, carID, ids); err != nil {
		cs.logger.Error("Failed to replace car colors", gecho.Field("error", err), gecho.Field("car_id", carID))
		return nil, err
	}
	cs.invalidate(ctx)
	cs.logger.Info("Car colors replaced", gecho.Field("car_id", carID), gecho.Field("count", len(ids)))

	return cs.store.CarColors(ctx, carID)
}

// UpdateCarOptions replaces the car's full option membership. An empty list clears it.
func (cs *CatalogService) UpdateCarOptions(ctx context.Context, carID int64, optionIDs []int64) ([]tables.Option, error) {
	if err := cs.requireCar(ctx, carID); err != nil {
		return nil, err
	}

	options, err := cs.store.ListOptions(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(options))
	for _, o := range options {
		known[o.ID] = true
	}
	ids, err := checkMembership("optionIds", optionIDs, known)
	if err != nil {
		return nil, err
	}

	if err := cs.store.ReplaceCarOptions(ctx, carID, ids); err != nil {
		cs.logger.Error("Failed to replace car options", gecho.Field("error", err), gecho.Field("car_id", carID))
		return nil, err
	}
	cs.invalidate(ctx)
	cs.logger.Info("Car options replaced", gecho.Field("car_id", carID), gecho.Field("count", len(ids)))

	return cs.store.CarOptions(ctx, carID)
}

// checkMembership de-duplicates ids and rejects any id missing from known.
func checkMembership(field string, ids []int64, known map[int64]bool) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	var verr *lib.ValidationError

	for i, id := range ids {
		if !known[id] {
			if verr == nil {
				verr = &lib.ValidationError{}
			}
			verr.Add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("unknown id %d", id))
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}

	if verr != nil {
		return nil, verr
	}
	return out, nil
}
