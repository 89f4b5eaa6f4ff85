package structs

type CarRequest struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Brand          string   `json:"brand" validate:"max=100"`
	BasePrice      int64    `json:"basePrice" validate:"gte=0"`
	ImageURL       string   `json:"imageUrl" validate:"max=500"`
	Engine         string   `json:"engine" validate:"max=100"`
	Power          string   `json:"power" validate:"max=100"`
	FuelEfficiency string   `json:"fuelEfficiency" validate:"max=100"`
	SafetyRating   string   `json:"safetyRating" validate:"max=100"`
	Dimensions     string   `json:"dimensions" validate:"max=200"`
	Description    string   `json:"description" validate:"max=4000"`
	Features       []string `json:"features" validate:"omitempty,dive,required,max=200"`
}

type ColorRequest struct {
	Code  string `json:"code" validate:"required,max=50"`
	Name  string `json:"name" validate:"required,max=100"`
	Hex   string `json:"hex" validate:"required,hexcolor"`
	Price int64  `json:"price"`
}

type OptionRequest struct {
	Code  string `json:"code" validate:"required,max=50"`
	Name  string `json:"name" validate:"required,max=100"`
	Price int64  `json:"price"`
}

// CarColorsRequest replaces the full color membership of a car. An empty list clears it.
type CarColorsRequest struct {
	ColorIDs []int64 `json:"colorIds" validate:"omitempty,dive,gt=0"`
}

// CarOptionsRequest replaces the full option membership of a car. An empty list clears it.
type CarOptionsRequest struct {
	OptionIDs []int64 `json:"optionIds" validate:"omitempty,dive,gt=0"`
}
