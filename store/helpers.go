package store

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"context"
)

func firstOrNotFound[T any](ctx context.Context, q *database.QueryBuilder[T]) (*T, error) {
	row, err := q.First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if row == nil {
		return nil, lib.ErrNotFound
	}
	return row, nil
}

// updateModel writes every column of row by primary key. A missing row is ErrNotFound.
func updateModel[T any](ctx context.Context, db *database.DB, row *T) (*T, error) {
	n, err := database.Query[T](db).UpdateModel(ctx, row)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if n == 0 {
		return nil, lib.ErrNotFound
	}
	return row, nil
}

func deleteByID[T any](ctx context.Context, db *database.DB, column string, id any) error {
	n, err := database.Query[T](db).Where(column, id).Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}
