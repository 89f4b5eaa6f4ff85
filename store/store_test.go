package store

import (
	"car_configurator_server/database"
	"car_configurator_server/structs"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// offlineDB renders queries without ever opening a connection.
func offlineDB(t *testing.T) *database.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://u:p@localhost:5432/db?sslmode=disable")))
	t.Cleanup(func() { _ = sqldb.Close() })
	return database.Wrap(bun.NewDB(sqldb, pgdialect.New()), &structs.DatabaseConfig{})
}

func TestQuoteQueries(t *testing.T) {
	s := NewQuoteStore(offlineDB(t))
	id := uuid.New()
	userID := uuid.New()

	t.Run("by id joins the car", func(t *testing.T) {
		sqlStr := s.byID(id).String()
		assert.Contains(t, sqlStr, `FROM "quotes" AS "q"`)
		assert.Contains(t, sqlStr, `LEFT JOIN "cars" AS "car"`)
		assert.Contains(t, sqlStr, `"car"."id" = "q"."car_id"`)
		assert.Contains(t, sqlStr, `q.id = '`+id.String()+`'`)
	})

	t.Run("by owner newest first", func(t *testing.T) {
		sqlStr := s.byUser(userID).String()
		assert.Contains(t, sqlStr, `q.user_id = '`+userID.String()+`'`)
		assert.Contains(t, sqlStr, `ORDER BY q.created_at DESC, q.id DESC`)
	})

	t.Run("admin filter", func(t *testing.T) {
		carID := int64(2)
		sqlStr := s.filtered(QuoteFilter{CarID: &carID, UserID: &userID, Ascending: true}).String()
		assert.Contains(t, sqlStr, `FROM "quotes" AS "q"`)
		assert.Contains(t, sqlStr, `LEFT JOIN "users" AS "user"`)
		assert.Contains(t, sqlStr, `"user"."id" = "q"."user_id"`)
		assert.Contains(t, sqlStr, `q.car_id = 2`)
		assert.Contains(t, sqlStr, `q.user_id = '`+userID.String()+`'`)
		assert.Contains(t, sqlStr, `ORDER BY q.created_at ASC, q.id ASC`)
	})

	t.Run("admin filter defaults", func(t *testing.T) {
		sqlStr := s.filtered(QuoteFilter{}).String()
		assert.NotContains(t, sqlStr, `q.car_id =`)
		assert.Contains(t, sqlStr, `ORDER BY q.created_at DESC, q.id DESC`)
	})

	t.Run("option rows", func(t *testing.T) {
		sqlStr := s.optionRows(id).DeleteString()
		assert.Contains(t, sqlStr, `DELETE FROM "quote_options" AS "qo"`)
		assert.Contains(t, sqlStr, `quote_id = '`+id.String()+`'`)
	})
}

func TestCatalogQueries(t *testing.T) {
	db := offlineDB(t)
	s := NewCatalogStore(db)

	sqlStr := s.cars().Where("c.id", 7).String()
	assert.Contains(t, sqlStr, `FROM "cars" AS "c"`)
	assert.Contains(t, sqlStr, `c.id = 7`)

	sqlStr = s.colorsForCar(3).String()
	assert.Contains(t, sqlStr, `FROM "colors" AS "col"`)
	assert.Contains(t, sqlStr, `col.id IN (SELECT cc.color_id FROM car_colors AS cc WHERE cc.car_id = 3)`)
	assert.Contains(t, sqlStr, `ORDER BY col.id ASC`)

	sqlStr = s.optionsForCar(3).String()
	assert.Contains(t, sqlStr, `FROM "options" AS "opt"`)
	assert.Contains(t, sqlStr, `opt.id IN (SELECT co.option_id FROM car_options AS co WHERE co.car_id = 3)`)

	sqlStr = s.optionsByCodes([]string{"NAVI", "SEATS"}).String()
	assert.Contains(t, sqlStr, `opt.code IN ('NAVI', 'SEATS')`)
	assert.Contains(t, sqlStr, `ORDER BY opt.id ASC`)

	sqlStr = featureRows(db, 3).DeleteString()
	assert.Contains(t, sqlStr, `DELETE FROM "car_features" AS "cf"`)
	assert.Contains(t, sqlStr, `car_id = 3`)
}

func TestUserQueries(t *testing.T) {
	s := NewUserStore(offlineDB(t))

	sqlStr := s.byEmail("Jane@Example.com").String()
	assert.Contains(t, sqlStr, `FROM "users" AS "u"`)
	assert.Contains(t, sqlStr, `lower(u.email) = lower('Jane@Example.com')`)

	assert.Contains(t, s.admins().String(), `u.is_admin = TRUE`)
}

func TestContentQueries(t *testing.T) {
	s := NewContentStore(offlineDB(t))

	sqlStr := s.faqs("payment", true).String()
	assert.Contains(t, sqlStr, `FROM "faqs" AS "f"`)
	assert.Contains(t, sqlStr, `f.is_active = TRUE`)
	assert.Contains(t, sqlStr, `f.category = 'payment'`)
	assert.Contains(t, sqlStr, `ORDER BY f.display_order ASC, f.id ASC`)

	sqlStr = s.faqs("", false).String()
	assert.NotContains(t, sqlStr, `f.is_active =`)
	assert.NotContains(t, sqlStr, `WHERE`)

	sqlStr = s.showrooms("Seoul").String()
	assert.Contains(t, sqlStr, `FROM "showrooms" AS "s"`)
	assert.Contains(t, sqlStr, `s.region = 'Seoul'`)
	assert.NotContains(t, s.showrooms("").String(), `WHERE`)
}
