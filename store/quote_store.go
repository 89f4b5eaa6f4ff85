package store

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"car_configurator_server/structs/tables"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type QuoteStore struct {
	db *database.DB
}

func NewQuoteStore(db *database.DB) *QuoteStore {
	return &QuoteStore{db: db}
}

// QuoteFilter narrows the admin quote listing.
type QuoteFilter struct {
	Page          int
	PageSize      int
	CarID         *int64
	UserID        *uuid.UUID
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Ascending     bool
}

func orderOptions(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("qo.position ASC")
}

func (s *QuoteStore) quotes() *database.QueryBuilder[tables.Quote] {
	return database.Query[tables.Quote](s.db).
		Relation("Options", orderOptions).
		Relation("Car")
}

func (s *QuoteStore) byID(id uuid.UUID) *database.QueryBuilder[tables.Quote] {
	return s.quotes().Where("q.id", id)
}

func (s *QuoteStore) byUser(userID uuid.UUID) *database.QueryBuilder[tables.Quote] {
	return s.quotes().
		Where("q.user_id", userID).
		OrderBy("q.created_at", database.DESC).
		OrderBy("q.id", database.DESC)
}

func (s *QuoteStore) filtered(f QuoteFilter) *database.QueryBuilder[tables.Quote] {
	q := s.quotes().Relation("User")

	if f.CarID != nil {
		q = q.Where("q.car_id", *f.CarID)
	}
	if f.UserID != nil {
		q = q.Where("q.user_id", *f.UserID)
	}
	if f.CreatedAfter != nil {
		q = q.WhereOp("q.created_at", ">=", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		q = q.WhereOp("q.created_at", "<", *f.CreatedBefore)
	}

	direction := database.DESC
	if f.Ascending {
		direction = database.ASC
	}
	return q.OrderBy("q.created_at", direction).OrderBy("q.id", direction)
}

func (s *QuoteStore) optionRows(quoteID uuid.UUID) *database.QueryBuilder[tables.QuoteOption] {
	return database.Query[tables.QuoteOption](s.db).Where("quote_id", quoteID)
}

// Create inserts the quote row and its option snapshot rows in one transaction.
func (s *QuoteStore) Create(ctx context.Context, quote *tables.Quote) (*tables.Quote, error) {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := database.Query[tables.Quote](s.db).Tx(tx).Insert(ctx, quote); err != nil {
			return err
		}
		return s.insertOptions(ctx, tx, quote)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return s.Get(ctx, quote.ID)
}

func (s *QuoteStore) insertOptions(ctx context.Context, tx bun.Tx, quote *tables.Quote) error {
	if len(quote.Options) == 0 {
		return nil
	}
	rows := make([]tables.QuoteOption, 0, len(quote.Options))
	for i, o := range quote.Options {
		rows = append(rows, tables.QuoteOption{
			QuoteID:     quote.ID,
			OptionCode:  o.OptionCode,
			OptionName:  o.OptionName,
			OptionPrice: o.OptionPrice,
			Position:    i,
		})
	}
	_, err := database.Query[tables.QuoteOption](s.db).Tx(tx).InsertMany(ctx, rows)
	return err
}

func (s *QuoteStore) Get(ctx context.Context, id uuid.UUID) (*tables.Quote, error) {
	return firstOrNotFound(ctx, s.byID(id))
}

// ListByUser returns the user's quotes newest first, with car display fields joined in.
func (s *QuoteStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]tables.Quote, error) {
	quotes, err := s.byUser(userID).All(ctx)
	return quotes, lib.MapPgError(err)
}

// List pages through every quote for the admin panel, joined with the owning user.
func (s *QuoteStore) List(ctx context.Context, f QuoteFilter) (*database.PaginationResult[tables.Quote], error) {
	result, err := database.Paginate(ctx, s.filtered(f), f.Page, f.PageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// Replace overwrites every scalar column and swaps the option set in one transaction.
func (s *QuoteStore) Replace(ctx context.Context, quote *tables.Quote) (*tables.Quote, error) {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		n, err := database.Query[tables.Quote](s.db).Tx(tx).UpdateModel(ctx, quote,
			"car_id", "color_code", "color_name", "color_hex", "color_price",
			"discount_name", "discount_amount", "delivery_region", "delivery_fee",
			"subtotal", "total", "updated_at",
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return lib.ErrNotFound
		}

		if _, err := s.optionRows(quote.ID).Tx(tx).Delete(ctx); err != nil {
			return err
		}
		return s.insertOptions(ctx, tx, quote)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return s.Get(ctx, quote.ID)
}

// Delete removes the option rows and then the quote in one transaction.
func (s *QuoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.optionRows(id).Tx(tx).Delete(ctx); err != nil {
			return err
		}
		n, err := database.Query[tables.Quote](s.db).Tx(tx).Where("id", id).Delete(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	return lib.MapPgError(err)
}
