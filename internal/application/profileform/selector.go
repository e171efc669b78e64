// Package profileform implementa el selector de formulario de perfil: dado
// el rol, elige el esquema de validación y el plan de campos, y traduce los
// valores enviados de vuelta a la forma del Account.
package profileform

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Conecta-api/internal/domain"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/jhoicas/Conecta-api/internal/domain/roledef"
	"github.com/shopspring/decimal"
)

// FormValues valores crudos del formulario, como texto libre por campo.
type FormValues map[string]string

// FieldErrors errores de validación por campo. Cualquier entrada bloquea el
// envío completo (todo-o-nada); el llamador muestra mensajes por campo, no
// un error genérico.
type FieldErrors map[string]string

// BaseProfile campos base del perfil resultantes de un Apply válido.
type BaseProfile struct {
	Name        string
	Email       string
	CompanyName string
}

// Schema esquema del formulario para un rol: campos base + específicos.
type Schema struct {
	Role   entity.Role
	Fields []roledef.FieldSpec
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SchemaFor devuelve el esquema de formulario del rol.
func SchemaFor(role entity.Role) (Schema, error) {
	def, ok := roledef.ForRole(role)
	if !ok {
		return Schema{}, domain.ErrInvalidRole
	}
	return Schema{Role: role, Fields: def.AllFormFields()}, nil
}

// SplitList traduce un campo de lista en texto libre delimitado por comas al
// array almacenado: split por ",", trim de cada segmento y descarte de
// vacíos. Transformación pura e idempotente sobre su resultado.
func SplitList(raw string) []string {
	return entity.CleanList(strings.Split(raw, ","))
}

// JoinList inversa de SplitList para precargar el formulario.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// InitialValuesFor produce los valores iniciales del formulario a partir de
// la cuenta actual.
func InitialValuesFor(acc *entity.Account) FormValues {
	if acc == nil {
		return FormValues{}
	}
	values := FormValues{
		"name":         acc.Name,
		"email":        acc.Email,
		"company_name": acc.CompanyName,
	}
	switch s := acc.Settings.(type) {
	case entity.ManufacturerSettings:
		values["production_capacity"] = strconv.Itoa(s.ProductionCapacity)
		values["certifications"] = JoinList(s.Certifications)
		values["minimum_order_value"] = s.MinimumOrderValue.String()
	case entity.BrandSettings:
		values["market_segments"] = JoinList(s.MarketSegments)
		values["brand_values"] = JoinList(s.BrandValues)
		values["target_demographics"] = JoinList(s.TargetDemographics)
		values["product_categories"] = JoinList(s.ProductCategories)
	case entity.RetailerSettings:
		values["store_locations"] = strconv.Itoa(s.StoreLocations)
		values["average_order_value"] = s.AverageOrderValue.String()
		values["customer_base"] = JoinList(s.CustomerBase)
	}
	return values
}

// Apply valida los valores enviados y los traduce a (perfil base, settings
// del rol). Todo-o-nada: con cualquier error de campo no se produce salida.
//
// El merge de settings es aditivo: parte de las settings actuales de la
// cuenta y sobreescribe solo los campos expuestos por el formulario del rol;
// los campos no expuestos (p.ej. preferred_categories) se preservan intactos,
// nunca se descartan por omisión. Un campo expuesto ausente del envío también
// conserva su valor actual.
func Apply(values FormValues, acc *entity.Account) (BaseProfile, entity.RoleSettings, FieldErrors) {
	errs := FieldErrors{}

	base := BaseProfile{
		Name:        acc.Name,
		Email:       acc.Email,
		CompanyName: acc.CompanyName,
	}
	if raw, ok := values["name"]; ok {
		// Longitud en caracteres, no en bytes: "Ñu" son dos caracteres.
		if utf8.RuneCountInString(strings.TrimSpace(raw)) < 2 {
			errs["name"] = "el nombre debe tener al menos 2 caracteres"
		} else {
			base.Name = strings.TrimSpace(raw)
		}
	}
	if raw, ok := values["email"]; ok {
		if !emailRe.MatchString(strings.TrimSpace(raw)) {
			errs["email"] = "email inválido"
		} else {
			base.Email = strings.TrimSpace(raw)
		}
	}
	if raw, ok := values["company_name"]; ok {
		if utf8.RuneCountInString(strings.TrimSpace(raw)) < 2 {
			errs["company_name"] = "el nombre de empresa debe tener al menos 2 caracteres"
		} else {
			base.CompanyName = strings.TrimSpace(raw)
		}
	}

	settings := applyRoleFields(values, acc, errs)

	if len(errs) > 0 {
		return BaseProfile{}, nil, errs
	}
	return base, settings, nil
}

// applyRoleFields recalcula la variante de settings del rol de la cuenta a
// partir de una copia de la actual (merge aditivo, no replace-by-omission).
func applyRoleFields(values FormValues, acc *entity.Account, errs FieldErrors) entity.RoleSettings {
	switch s := acc.Settings.(type) {
	case entity.ManufacturerSettings:
		s.Certifications = entity.CleanList(s.Certifications)
		s.PreferredCategories = entity.CleanList(s.PreferredCategories)
		if raw, ok := values["production_capacity"]; ok {
			s.ProductionCapacity = parseCount(raw, "production_capacity", errs)
		}
		if raw, ok := values["certifications"]; ok {
			s.Certifications = SplitList(raw)
		}
		if raw, ok := values["minimum_order_value"]; ok {
			s.MinimumOrderValue = parseMoney(raw, "minimum_order_value", errs)
		}
		return s
	case entity.BrandSettings:
		if raw, ok := values["market_segments"]; ok {
			s.MarketSegments = SplitList(raw)
		}
		if raw, ok := values["brand_values"]; ok {
			s.BrandValues = SplitList(raw)
		}
		if raw, ok := values["target_demographics"]; ok {
			s.TargetDemographics = SplitList(raw)
		}
		if raw, ok := values["product_categories"]; ok {
			s.ProductCategories = SplitList(raw)
		}
		return s
	case entity.RetailerSettings:
		s.CustomerBase = entity.CleanList(s.CustomerBase)
		s.PreferredCategories = entity.CleanList(s.PreferredCategories)
		if raw, ok := values["store_locations"]; ok {
			s.StoreLocations = parseCount(raw, "store_locations", errs)
		}
		if raw, ok := values["average_order_value"]; ok {
			s.AverageOrderValue = parseMoney(raw, "average_order_value", errs)
		}
		if raw, ok := values["customer_base"]; ok {
			s.CustomerBase = SplitList(raw)
		}
		return s
	default:
		return acc.Settings
	}
}

// parseCount coerciona un entero >= 0 desde texto; negativo o no numérico
// produce un error a nivel de campo.
func parseCount(raw, key string, errs FieldErrors) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		errs[key] = "debe ser un número"
		return 0
	}
	if n < 0 {
		errs[key] = "no puede ser negativo"
		return 0
	}
	return n
}

// parseMoney coerciona un decimal >= 0 desde texto.
func parseMoney(raw, key string, errs FieldErrors) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		errs[key] = "debe ser un número"
		return decimal.Zero
	}
	if d.IsNegative() {
		errs[key] = "no puede ser negativo"
		return decimal.Zero
	}
	return d
}
