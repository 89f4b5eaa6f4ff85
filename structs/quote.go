package structs

// QuoteRequest is the body of both quote creation and full-replace update.
type QuoteRequest struct {
	CarID          int64    `json:"carId" validate:"required,gt=0"`
	ColorCode      string   `json:"colorCode" validate:"required,max=50"`
	OptionCodes    []string `json:"optionCodes" validate:"omitempty,dive,required,max=50"`
	DiscountName   string   `json:"discountName" validate:"max=100"`
	DiscountAmount int64    `json:"discountAmount" validate:"gte=0"`
	DeliveryRegion string   `json:"deliveryRegion" validate:"max=100"`
	DeliveryFee    int64    `json:"deliveryFee" validate:"gte=0"`
	Subtotal       int64    `json:"subtotal" validate:"gte=0"`
	Total          int64    `json:"total" validate:"gte=0"`
}
