package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// All executes the query and returns all matching records
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	var data []T
	err := q.db.WithRetry(ctx, func() error {
		data = nil
		return q.buildSelect(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	if data == nil {
		data = []T{}
	}
	return data, nil
}

// First executes the query and returns the first matching record, or nil when nothing matches
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	data := new(T)
	err := q.db.WithRetry(ctx, func() error {
		return q.buildSelect(data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count returns the number of matching records, ignoring limit and offset
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	var count int
	err := q.db.WithRetry(ctx, func() error {
		var err error
		count, err = q.idb.NewSelect().Model((*T)(nil)).Apply(q.applyWheres).Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it with database defaults filled in
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	err := q.db.WithRetry(ctx, func() error {
		_, err := q.idb.NewInsert().Model(data).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records in one statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return data, nil
	}

	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	err := q.db.WithRetry(ctx, func() error {
		_, err := q.idb.NewInsert().Model(&data).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update applies a column map to every matching record and returns the affected row count
func (q *QueryBuilder[T]) Update(ctx context.Context, updates map[string]any) (int, error) {
	if len(updates) == 0 {
		return 0, errors.New("update called without columns")
	}

	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	var rowsAffected int64
	err := q.db.WithRetry(ctx, func() error {
		query := q.idb.NewUpdate().Model((*T)(nil))
		for column, value := range updates {
			query = query.Set("? = ?", bun.Ident(column), value)
		}
		for _, w := range q.wheres {
			query = query.Where(w.sql, w.args...)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// UpdateModel writes every column of data by primary key
func (q *QueryBuilder[T]) UpdateModel(ctx context.Context, data *T, columns ...string) (int, error) {
	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	var rowsAffected int64
	err := q.db.WithRetry(ctx, func() error {
		query := q.idb.NewUpdate().Model(data).WherePK()
		if len(columns) > 0 {
			query = query.Column(columns...)
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query. It refuses to run without a condition.
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	if len(q.wheres) == 0 {
		return 0, errors.New("delete called without conditions")
	}

	start := time.Now()
	ctx, cancel := q.db.withCallTimeout(ctx, q.timeout)
	defer cancel()

	var rowsAffected int64
	err := q.db.WithRetry(ctx, func() error {
		res, err := q.buildDelete().Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

func (q *QueryBuilder[T]) buildDelete() *bun.DeleteQuery {
	query := q.idb.NewDelete().Model((*T)(nil))
	for _, w := range q.wheres {
		query = query.Where(w.sql, w.args...)
	}
	return query
}

func (q *QueryBuilder[T]) applyWheres(query *bun.SelectQuery) *bun.SelectQuery {
	for _, w := range q.wheres {
		query = query.Where(w.sql, w.args...)
	}
	return query
}
