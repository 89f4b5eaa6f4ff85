package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Brand struct {
	bun.BaseModel `bun:"table:brands,alias:b"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Logo        string    `bun:"logo" json:"logo"`
	Tagline     string    `bun:"tagline" json:"tagline"`
	Description string    `bun:"description,type:text" json:"description"`
	Heritage    string    `bun:"heritage,type:text" json:"heritage"`
	KeyTech     string    `bun:"key_tech,type:text" json:"keyTech"`
	Philosophy  string    `bun:"philosophy,type:text" json:"philosophy"`
	Values      string    `bun:"brand_values,type:text" json:"values"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

type Showroom struct {
	bun.BaseModel `bun:"table:showrooms,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Address   string    `bun:"address,notnull" json:"address"`
	Phone     string    `bun:"phone" json:"phone"`
	Hours     string    `bun:"hours" json:"hours"`
	Services  string    `bun:"services" json:"services"`
	ImageURL  string    `bun:"image_url" json:"imageUrl"`
	Region    string    `bun:"region" json:"region"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

type Faq struct {
	bun.BaseModel `bun:"table:faqs,alias:f"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Category     string    `bun:"category,notnull" json:"category"`
	Question     string    `bun:"question,notnull" json:"question"`
	Answer       string    `bun:"answer,type:text,notnull" json:"answer"`
	DisplayOrder int       `bun:"display_order,notnull,default:0" json:"displayOrder"`
	IsActive     bool      `bun:"is_active,notnull" json:"isActive"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
