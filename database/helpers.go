package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Transaction runs fn inside a transaction. A returned error or a panic rolls back.
func (db *DB) Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// Pagination describes one page of a larger result
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PaginationResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination clamps page and pageSize and derives the page count from total
func NewPagination(page, pageSize, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

// Paginate counts the matching rows and then loads the requested page
func Paginate[T any](ctx context.Context, q *QueryBuilder[T], page, pageSize int) (*PaginationResult[T], error) {
	total, err := q.Count(ctx)
	if err != nil {
		return nil, err
	}

	p := NewPagination(page, pageSize, total)
	data, err := q.Limit(p.PageSize).Offset((p.Page - 1) * p.PageSize).All(ctx)
	if err != nil {
		return nil, err
	}

	return &PaginationResult[T]{Data: data, Pagination: p}, nil
}
