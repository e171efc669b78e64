package entity

import "github.com/shopspring/decimal"

// RoleSettings es la unión discriminada de configuraciones por rol.
// Exactamente tres variantes la implementan; el tag (SettingsRole) debe
// coincidir siempre con Account.Role.
type RoleSettings interface {
	SettingsRole() Role
	clone() RoleSettings
}

// ManufacturerSettings configuración propia del rol manufacturer.
type ManufacturerSettings struct {
	ProductionCapacity  int // unidades/mes, >= 0
	Certifications      []string
	MinimumOrderValue   decimal.Decimal // >= 0
	PreferredCategories []string
}

// BrandSettings configuración propia del rol brand.
type BrandSettings struct {
	MarketSegments     []string
	BrandValues        []string
	TargetDemographics []string
	ProductCategories  []string
}

// RetailerSettings configuración propia del rol retailer.
type RetailerSettings struct {
	StoreLocations      int             // >= 0
	AverageOrderValue   decimal.Decimal // >= 0
	CustomerBase        []string
	PreferredCategories []string
}

// SettingsRole implementa el tag de la unión para cada variante.
func (ManufacturerSettings) SettingsRole() Role { return RoleManufacturer }
func (BrandSettings) SettingsRole() Role        { return RoleBrand }
func (RetailerSettings) SettingsRole() Role     { return RoleRetailer }

func (s ManufacturerSettings) clone() RoleSettings {
	s.Certifications = cloneList(s.Certifications)
	s.PreferredCategories = cloneList(s.PreferredCategories)
	return s
}

func (s BrandSettings) clone() RoleSettings {
	s.MarketSegments = cloneList(s.MarketSegments)
	s.BrandValues = cloneList(s.BrandValues)
	s.TargetDemographics = cloneList(s.TargetDemographics)
	s.ProductCategories = cloneList(s.ProductCategories)
	return s
}

func (s RetailerSettings) clone() RoleSettings {
	s.CustomerBase = cloneList(s.CustomerBase)
	s.PreferredCategories = cloneList(s.PreferredCategories)
	return s
}

func cloneList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
