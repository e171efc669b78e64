package http

import (
	"github.com/jhoicas/Conecta-api/internal/application/dto"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// toAccountResponse convierte la entidad de cuenta a su DTO de salida,
// serializando la variante de settings que corresponda al rol.
func toAccountResponse(a *entity.Account) dto.AccountResponse {
	if a == nil {
		return dto.AccountResponse{}
	}
	return dto.AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		CompanyName: a.CompanyName,
		Role:        string(a.Role),
		Avatar:      a.Avatar,
		Status:      string(a.Status),
		Settings:    settingsToDTO(a.Settings),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func settingsToDTO(s entity.RoleSettings) interface{} {
	switch v := s.(type) {
	case entity.ManufacturerSettings:
		return dto.ManufacturerSettingsDTO{
			ProductionCapacity:  v.ProductionCapacity,
			Certifications:      v.Certifications,
			MinimumOrderValue:   v.MinimumOrderValue.String(),
			PreferredCategories: v.PreferredCategories,
		}
	case entity.BrandSettings:
		return dto.BrandSettingsDTO{
			MarketSegments:     v.MarketSegments,
			BrandValues:        v.BrandValues,
			TargetDemographics: v.TargetDemographics,
			ProductCategories:  v.ProductCategories,
		}
	case entity.RetailerSettings:
		return dto.RetailerSettingsDTO{
			StoreLocations:      v.StoreLocations,
			AverageOrderValue:   v.AverageOrderValue.String(),
			CustomerBase:        v.CustomerBase,
			PreferredCategories: v.PreferredCategories,
		}
	default:
		return nil
	}
}

// manufacturerSettingsFromDTO convierte el DTO de entrada a la variante de
// dominio. El string decimal inválido se reporta como error de entrada.
func manufacturerSettingsFromDTO(in dto.ManufacturerSettingsDTO) (entity.RoleSettings, error) {
	mov, err := parseDecimal(in.MinimumOrderValue)
	if err != nil {
		return nil, err
	}
	return entity.ManufacturerSettings{
		ProductionCapacity:  in.ProductionCapacity,
		Certifications:      in.Certifications,
		MinimumOrderValue:   mov,
		PreferredCategories: in.PreferredCategories,
	}, nil
}

func brandSettingsFromDTO(in dto.BrandSettingsDTO) entity.RoleSettings {
	return entity.BrandSettings{
		MarketSegments:     in.MarketSegments,
		BrandValues:        in.BrandValues,
		TargetDemographics: in.TargetDemographics,
		ProductCategories:  in.ProductCategories,
	}
}

func retailerSettingsFromDTO(in dto.RetailerSettingsDTO) (entity.RoleSettings, error) {
	aov, err := parseDecimal(in.AverageOrderValue)
	if err != nil {
		return nil, err
	}
	return entity.RetailerSettings{
		StoreLocations:      in.StoreLocations,
		AverageOrderValue:   aov,
		CustomerBase:        in.CustomerBase,
		PreferredCategories: in.PreferredCategories,
	}, nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
