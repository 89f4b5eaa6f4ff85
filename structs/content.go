package structs

type BrandRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Logo        string `json:"logo" validate:"max=500"`
	Tagline     string `json:"tagline" validate:"max=200"`
	Description string `json:"description"`
	Heritage    string `json:"heritage"`
	KeyTech     string `json:"keyTech"`
	Philosophy  string `json:"philosophy"`
	Values      string `json:"values"`
}

type ShowroomRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Address  string `json:"address" validate:"required,max=300"`
	Phone    string `json:"phone" validate:"max=50"`
	Hours    string `json:"hours" validate:"max=200"`
	Services string `json:"services" validate:"max=500"`
	ImageURL string `json:"imageUrl" validate:"max=500"`
	Region   string `json:"region" validate:"max=50"`
}

type FaqRequest struct {
	Category     string `json:"category" validate:"required,max=50"`
	Question     string `json:"question" validate:"required,max=500"`
	Answer       string `json:"answer" validate:"required"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
	IsActive     *bool  `json:"isActive"`
}
