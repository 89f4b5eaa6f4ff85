// Package pricing derives quote totals from catalog records and holds the
// in-progress configuration a client builds before submitting a quote.
package pricing

// Car, Color and Option carry only the fields pricing needs. Prices are whole currency units.
type Car struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	BasePrice int64  `json:"basePrice"`
}

type Color struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Price int64  `json:"price"`
}

type Option struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Discount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type Delivery struct {
	Region string `json:"region"`
	Fee    int64  `json:"fee"`
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Total    int64 `json:"total"`
}

// Compute returns the subtotal and the total for a configuration. A nil car or
// color contributes nothing, and the total never drops below zero.
func Compute(car *Car, color *Color, options []Option, discount Discount, delivery Delivery) Totals {
	var subtotal int64
	if car != nil {
		subtotal += car.BasePrice
	}
	if color != nil {
		subtotal += color.Price
	}
	for _, o := range options {
		subtotal += o.Price
	}

	return Totals{
		Subtotal: subtotal,
		Total:    max(0, subtotal-discount.Amount+delivery.Fee),
	}
}
