package database

import (
	"car_configurator_server/structs/tables"
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type tableSpec struct {
	model       any
	foreignKeys []string
}

// Tables in creation order; referenced tables come first.
var schema = []tableSpec{
	{model: (*tables.User)(nil)},
	{model: (*tables.Car)(nil)},
	{model: (*tables.CarFeature)(nil), foreignKeys: []string{
		`("car_id") REFERENCES "cars" ("id") ON DELETE CASCADE`,
	}},
	{model: (*tables.Color)(nil)},
	{model: (*tables.Option)(nil)},
	{model: (*tables.CarColor)(nil), foreignKeys: []string{
		`("car_id") REFERENCES "cars" ("id") ON DELETE CASCADE`,
		`("color_id") REFERENCES "colors" ("id") ON DELETE CASCADE`,
	}},
	{model: (*tables.CarOption)(nil), foreignKeys: []string{
		`("car_id") REFERENCES "cars" ("id") ON DELETE CASCADE`,
		`("option_id") REFERENCES "options" ("id") ON DELETE CASCADE`,
	}},
	// car_id carries no foreign key. Quotes outlive the cars they price.
	{model: (*tables.Quote)(nil), foreignKeys: []string{
		`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
	}},
	{model: (*tables.QuoteOption)(nil), foreignKeys: []string{
		`("quote_id") REFERENCES "quotes" ("id") ON DELETE CASCADE`,
	}},
	{model: (*tables.Brand)(nil)},
	{model: (*tables.Showroom)(nil)},
	{model: (*tables.Faq)(nil)},
}

type indexSpec struct {
	model   any
	name    string
	columns []string
}

var indexes = []indexSpec{
	{model: (*tables.Quote)(nil), name: "quotes_user_id_created_at_idx", columns: []string{"user_id", "created_at"}},
	{model: (*tables.CarFeature)(nil), name: "car_features_car_id_idx", columns: []string{"car_id"}},
	{model: (*tables.Showroom)(nil), name: "showrooms_region_idx", columns: []string{"region"}},
	{model: (*tables.Faq)(nil), name: "faqs_category_order_idx", columns: []string{"category", "display_order"}},
}

// CreateSchema creates every table and index that does not exist yet
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, t := range schema {
		query := db.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.foreignKeys {
			query = query.ForeignKey(fk)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", t.model, err)
		}
	}

	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
