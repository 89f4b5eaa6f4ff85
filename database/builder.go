package database

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

type condition struct {
	sql  string
	args []any
}

type relation struct {
	name  string
	apply []func(*bun.SelectQuery) *bun.SelectQuery
}

// QueryBuilder provides a fluent, type-safe API over bun for one table model
type QueryBuilder[T any] struct {
	db        *DB
	idb       bun.IDB
	wheres    []condition
	orders    []string
	relations []relation
	limitVal  int
	offsetVal int
	timeout   time.Duration
}

// Query creates a new QueryBuilder instance bound to db
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db, idb: db.DB}
}

// Tx runs the query inside tx instead of on the pool
func (q *QueryBuilder[T]) Tx(tx bun.IDB) *QueryBuilder[T] {
	q.idb = tx
	return q
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, condition{
		sql:  fmt.Sprintf("%s %s ?", column, operator),
		args: []any{value},
	})
	return q
}

// WhereIn adds a WHERE IN condition. values must be a slice.
func (q *QueryBuilder[T]) WhereIn(column string, values any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, condition{
		sql:  column + " IN (?)",
		args: []any{bun.In(values)},
	})
	return q
}

// WhereNull adds a WHERE IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, condition{sql: column + " IS NULL"})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, condition{sql: sql, args: args})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, fmt.Sprintf("%s %s", column, direction))
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = offset
	return q
}

// Relation preloads a bun relation declared on T, optionally shaping its query
func (q *QueryBuilder[T]) Relation(name string, apply ...func(*bun.SelectQuery) *bun.SelectQuery) *QueryBuilder[T] {
	q.relations = append(q.relations, relation{name: name, apply: apply})
	return q
}

// Timeout overrides the configured per-call timeout for this query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// buildSelect renders the accumulated clauses onto a bun SelectQuery for model
func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	query := q.idb.NewSelect().Model(model)

	for _, rel := range q.relations {
		if len(rel.apply) == 0 {
			query = query.Relation(rel.name)
			continue
		}
		query = query.Relation(rel.name, rel.apply...)
	}
	for _, w := range q.wheres {
		query = query.Where(w.sql, w.args...)
	}
	for _, o := range q.orders {
		query = query.OrderExpr(o)
	}
	if q.limitVal > 0 {
		query = query.Limit(q.limitVal)
	}
	if q.offsetVal > 0 {
		query = query.Offset(q.offsetVal)
	}
	return query
}

// String renders the SELECT this builder would run, for logging and tests
func (q *QueryBuilder[T]) String() string {
	var rows []T
	return q.buildSelect(&rows).String()
}

// DeleteString renders the DELETE that Delete would run
func (q *QueryBuilder[T]) DeleteString() string {
	return q.buildDelete().String()
}
