package dto

import "time"

// LoginRequest entrada para login: rol obligatorio y seed de perfil
// opcional (los campos vacíos toman los defaults del rol).
type LoginRequest struct {
	Role        string `json:"role" validate:"required,oneof=manufacturer brand retailer"`
	Name        string `json:"name" validate:"omitempty,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	Avatar      string `json:"avatar" validate:"omitempty"`
}

// AccountResponse salida de la cuenta de sesión. Settings lleva la variante
// del rol (exactamente una de las tres formas).
type AccountResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	CompanyName string      `json:"company_name"`
	Role        string      `json:"role"`
	Avatar      string      `json:"avatar,omitempty"`
	Status      string      `json:"status"`
	Settings    interface{} `json:"settings"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LoginResponse salida de login con el token de sesión.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// ManufacturerSettingsDTO settings del rol manufacturer (entrada y salida).
type ManufacturerSettingsDTO struct {
	ProductionCapacity  int      `json:"production_capacity" validate:"min=0"`
	Certifications      []string `json:"certifications"`
	MinimumOrderValue   string   `json:"minimum_order_value"` // decimal como string
	PreferredCategories []string `json:"preferred_categories"`
}

// BrandSettingsDTO settings del rol brand (entrada y salida).
type BrandSettingsDTO struct {
	MarketSegments     []string `json:"market_segments"`
	BrandValues        []string `json:"brand_values"`
	TargetDemographics []string `json:"target_demographics"`
	ProductCategories  []string `json:"product_categories"`
}

// RetailerSettingsDTO settings del rol retailer (entrada y salida).
type RetailerSettingsDTO struct {
	StoreLocations      int      `json:"store_locations" validate:"min=0"`
	AverageOrderValue   string   `json:"average_order_value"` // decimal como string
	CustomerBase        []string `json:"customer_base"`
	PreferredCategories []string `json:"preferred_categories"`
}
