package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Car struct {
	bun.BaseModel `bun:"table:cars,alias:c"`

	ID             int64         `bun:"id,pk,autoincrement" json:"id"`
	Name           string        `bun:"name,notnull" json:"name"`
	Brand          string        `bun:"brand" json:"brand"`
	BasePrice      int64         `bun:"base_price,notnull" json:"basePrice"` // whole currency units
	ImageURL       string        `bun:"image_url" json:"image"`
	Engine         string        `bun:"engine" json:"engine"`
	Power          string        `bun:"power" json:"power"`
	FuelEfficiency string        `bun:"fuel_efficiency" json:"fuelEfficiency"`
	SafetyRating   string        `bun:"safety_rating" json:"safetyRating"`
	Dimensions     string        `bun:"dimensions" json:"dimensions"`
	Description    string        `bun:"description" json:"description"`
	CreatedAt      time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	FeatureRows    []*CarFeature `bun:"rel:has-many,join:id=car_id" json:"-"`
	Features       []string      `bun:"-" json:"features"`
}

// FillFeatures copies the loaded feature rows into Features, keeping row order.
func (c *Car) FillFeatures() {
	c.Features = make([]string, 0, len(c.FeatureRows))
	for _, f := range c.FeatureRows {
		c.Features = append(c.Features, f.FeatureName)
	}
}

type CarFeature struct {
	bun.BaseModel `bun:"table:car_features,alias:cf"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	CarID       int64  `bun:"car_id,notnull" json:"carId"`
	FeatureName string `bun:"feature_name,notnull" json:"featureName"`
}

type Color struct {
	bun.BaseModel `bun:"table:colors,alias:col"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Code  string `bun:"code,notnull,unique" json:"code"`
	Name  string `bun:"name,notnull" json:"name"`
	Hex   string `bun:"hex,notnull" json:"hex"`
	Price int64  `bun:"price,notnull,default:0" json:"price"`
}

type Option struct {
	bun.BaseModel `bun:"table:options,alias:opt"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Code  string `bun:"code,notnull,unique" json:"code"`
	Name  string `bun:"name,notnull" json:"name"`
	Price int64  `bun:"price,notnull,default:0" json:"price"`
}

// CarColor marks a color as selectable for a car.
type CarColor struct {
	bun.BaseModel `bun:"table:car_colors,alias:cc"`

	CarID   int64 `bun:"car_id,pk"`
	ColorID int64 `bun:"color_id,pk"`
}

// CarOption marks an option as selectable for a car.
type CarOption struct {
	bun.BaseModel `bun:"table:car_options,alias:co"`

	CarID    int64 `bun:"car_id,pk"`
	OptionID int64 `bun:"option_id,pk"`
}
