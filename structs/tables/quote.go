package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Quote is a priced configuration. Color and option fields are copied from the
// catalog when the quote is saved and never follow later catalog edits.
type Quote struct {
	bun.BaseModel `bun:"table:quotes,alias:q"`

	ID             uuid.UUID      `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Reference      string         `bun:"reference,notnull,unique" json:"reference"`
	UserID         *uuid.UUID     `bun:"user_id,type:uuid" json:"userId"` // nil for anonymous quotes
	CarID          int64          `bun:"car_id,notnull" json:"carId"`
	ColorCode      string         `bun:"color_code,notnull" json:"colorCode"`
	ColorName      string         `bun:"color_name" json:"colorName"`
	ColorHex       string         `bun:"color_hex" json:"colorHex"`
	ColorPrice     int64          `bun:"color_price,notnull,default:0" json:"colorPrice"`
	DiscountName   string         `bun:"discount_name" json:"discountName"`
	DiscountAmount int64          `bun:"discount_amount,notnull,default:0" json:"discountAmount"`
	DeliveryRegion string         `bun:"delivery_region" json:"deliveryRegion"`
	DeliveryFee    int64          `bun:"delivery_fee,notnull,default:0" json:"deliveryFee"`
	Subtotal       int64          `bun:"subtotal,notnull" json:"subtotal"`
	Total          int64          `bun:"total,notnull" json:"total"`
	CreatedAt      time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time      `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
	Options        []*QuoteOption `bun:"rel:has-many,join:id=quote_id" json:"options"`
	Car            *Car           `bun:"rel:belongs-to,join:car_id=id" json:"car,omitempty"`
	User           *User          `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// OptionCodes returns the snapshot option codes in stored order.
func (q *Quote) OptionCodes() []string {
	codes := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		codes = append(codes, o.OptionCode)
	}
	return codes
}

// IsOwnedBy reports whether the quote belongs to userID. Anonymous quotes are owned by nobody.
func (q *Quote) IsOwnedBy(userID uuid.UUID) bool {
	return q.UserID != nil && *q.UserID == userID
}

type QuoteOption struct {
	bun.BaseModel `bun:"table:quote_options,alias:qo"`

	QuoteID     uuid.UUID `bun:"quote_id,pk,type:uuid" json:"-"`
	OptionCode  string    `bun:"option_code,pk" json:"code"`
	OptionName  string    `bun:"option_name" json:"name"`
	OptionPrice int64     `bun:"option_price,notnull,default:0" json:"price"`
	Position    int       `bun:"position,notnull,default:0" json:"-"`
}
