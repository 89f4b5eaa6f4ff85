package database

import (
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// offlineDB renders queries without ever opening a connection.
func offlineDB(t *testing.T) *DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://u:p@localhost:5432/db?sslmode=disable")))
	t.Cleanup(func() { _ = sqldb.Close() })
	return Wrap(bun.NewDB(sqldb, pgdialect.New()), &structs.DatabaseConfig{})
}

func TestQueryBuilderRendersClauses(t *testing.T) {
	db := offlineDB(t)

	sqlStr := Query[tables.Faq](db).
		Where("f.is_active", true).
		Where("f.category", "delivery").
		OrderBy("f.display_order", ASC).
		OrderBy("f.id", ASC).
		Limit(10).
		Offset(20).
		String()

	assert.Contains(t, sqlStr, `FROM "faqs" AS "f"`)
	assert.Contains(t, sqlStr, `f.is_active = TRUE`)
	assert.Contains(t, sqlStr, `f.category = 'delivery'`)
	assert.Contains(t, sqlStr, `ORDER BY f.display_order ASC, f.id ASC`)
	assert.Contains(t, sqlStr, `LIMIT 10`)
	assert.Contains(t, sqlStr, `OFFSET 20`)
}

func TestQueryBuilderWhereIn(t *testing.T) {
	db := offlineDB(t)

	sqlStr := Query[tables.Option](db).WhereIn("opt.code", []string{"NAVI", "SUNROOF"}).String()
	assert.Contains(t, sqlStr, `opt.code IN ('NAVI', 'SUNROOF')`)
}

func TestDeleteRequiresCondition(t *testing.T) {
	db := offlineDB(t)

	_, err := Query[tables.Quote](db).Delete(context.Background())
	assert.Error(t, err)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name                  string
		page, pageSize, total int
		want                  Pagination
	}{
		{"first page", 1, 20, 45, Pagination{Page: 1, PageSize: 20, Total: 45, TotalPages: 3}},
		{"clamps page", 0, 10, 10, Pagination{Page: 1, PageSize: 10, Total: 10, TotalPages: 1}},
		{"default size", 2, 0, 0, Pagination{Page: 2, PageSize: 20, Total: 0, TotalPages: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.pageSize, tt.total))
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.False(t, isRetryableError(sql.ErrNoRows))
	assert.False(t, isRetryableError(context.Canceled))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "42P01"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "08006"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "53300"}))
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.False(t, isRetryableError(errors.New("column does not exist")))
}

func TestRetryWithBackoff(t *testing.T) {
	fast := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2, EnableRetry: true}
	transient := &pgconn.PgError{Code: "40001"}

	t.Run("disabled runs once", func(t *testing.T) {
		calls := 0
		cfg := fast
		cfg.EnableRetry = false

		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return transient
		})
		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers from transient failure", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fast, func() error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fast, func() error {
			calls++
			return transient
		})
		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry integrity errors", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fast, func() error {
			calls++
			return &pgconn.PgError{Code: "23505"}
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
