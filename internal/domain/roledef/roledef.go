// Package roledef centraliza la tabla rol→descriptor que consumen el router
// de vistas, el menú de navegación y el selector de formulario de perfil.
// Toda decisión "switch por rol" del sistema se resuelve aquí, en un único
// punto, para que las ramas no se desincronicen entre consumidores.
package roledef

import (
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ViewKey identifica el panel activo dentro del dashboard de un rol.
type ViewKey string

// Vistas del dashboard. Overview existe para los tres roles y es siempre la
// vista inicial; el resto depende del rol.
const (
	ViewOverview      ViewKey = "overview"
	ViewProduction    ViewKey = "production"
	ViewProducts      ViewKey = "products"
	ViewInventory     ViewKey = "inventory"
	ViewSuppliers     ViewKey = "suppliers"
	ViewMatches       ViewKey = "matches"
	ViewAnalytics     ViewKey = "analytics"
	ViewManufacturers ViewKey = "manufacturers"
	ViewBrands        ViewKey = "brands"
)

// NavItem entrada del menú de navegación del dashboard.
type NavItem struct {
	Key   ViewKey
	Label string
}

// FieldKind tipo de campo en el formulario de perfil.
type FieldKind string

const (
	FieldText   FieldKind = "text"   // string libre, longitud mínima 2 para campos base
	FieldEmail  FieldKind = "email"  // gramática de email estándar
	FieldNumber FieldKind = "number" // entero >= 0, coercionado desde texto
	FieldMoney  FieldKind = "money"  // decimal >= 0, coercionado desde texto
	FieldList   FieldKind = "list"   // texto delimitado por comas → []string
)

// FieldSpec describe un campo del formulario de perfil.
type FieldSpec struct {
	Key   string
	Label string
	Kind  FieldKind
}

// ProfileSeed valores iniciales de perfil usados por Login cuando el
// registro no aporta datos.
type ProfileSeed struct {
	Name        string
	Email       string
	CompanyName string
}

// Descriptor agrupa todo lo que varía por rol: menú de navegación, vista
// por defecto, constructor de settings, campos del formulario de perfil y
// seed por defecto para login.
type Descriptor struct {
	Role        entity.Role
	Label       string
	DefaultView ViewKey
	NavItems    []NavItem
	// NewSettings construye la variante de settings del rol con valores
	// por defecto; garantiza el invariante tag == rol en origen.
	NewSettings func() entity.RoleSettings
	// FormFields campos específicos del rol expuestos por el formulario de
	// perfil. Los campos del Account no listados aquí se preservan sin
	// cambios al aplicar el formulario (merge aditivo).
	FormFields  []FieldSpec
	DefaultSeed ProfileSeed
}

// BaseFormFields campos comunes a los tres roles.
var BaseFormFields = []FieldSpec{
	{Key: "name", Label: "Nombre", Kind: FieldText},
	{Key: "email", Label: "Email", Kind: FieldEmail},
	{Key: "company_name", Label: "Empresa", Kind: FieldText},
}

var descriptors = map[entity.Role]Descriptor{
	entity.RoleManufacturer: {
		Role:        entity.RoleManufacturer,
		Label:       "Fabricante",
		DefaultView: ViewOverview,
		NavItems: []NavItem{
			{Key: ViewOverview, Label: "Resumen"},
			{Key: ViewProduction, Label: "Producción"},
			{Key: ViewProducts, Label: "Productos"},
			{Key: ViewInventory, Label: "Inventario"},
			{Key: ViewSuppliers, Label: "Proveedores"},
			{Key: ViewMatches, Label: "Matches"},
			{Key: ViewAnalytics, Label: "Analítica"},
			{Key: ViewManufacturers, Label: "Fabricantes"},
		},
		NewSettings: func() entity.RoleSettings {
			return entity.ManufacturerSettings{
				ProductionCapacity:  0,
				Certifications:      []string{},
				MinimumOrderValue:   decimal.Zero,
				PreferredCategories: []string{},
			}
		},
		// preferred_categories no se expone en el formulario: se preserva
		// intacto en cada Apply.
		FormFields: []FieldSpec{
			{Key: "production_capacity", Label: "Capacidad de producción", Kind: FieldNumber},
			{Key: "certifications", Label: "Certificaciones", Kind: FieldList},
			{Key: "minimum_order_value", Label: "Pedido mínimo", Kind: FieldMoney},
		},
		DefaultSeed: ProfileSeed{
			Name:        "Usuario fabricante",
			Email:       "fabricante@conecta.demo",
			CompanyName: "Mi Fábrica",
		},
	},
	entity.RoleBrand: {
		Role:        entity.RoleBrand,
		Label:       "Marca",
		DefaultView: ViewOverview,
		NavItems: []NavItem{
			{Key: ViewOverview, Label: "Resumen"},
			{Key: ViewProducts, Label: "Productos"},
			{Key: ViewManufacturers, Label: "Fabricantes"},
			{Key: ViewBrands, Label: "Marcas"},
			{Key: ViewAnalytics, Label: "Analítica"},
		},
		NewSettings: func() entity.RoleSettings {
			return entity.BrandSettings{
				MarketSegments:     []string{},
				BrandValues:        []string{},
				TargetDemographics: []string{},
				ProductCategories:  []string{},
			}
		},
		FormFields: []FieldSpec{
			{Key: "market_segments", Label: "Segmentos de mercado", Kind: FieldList},
			{Key: "brand_values", Label: "Valores de marca", Kind: FieldList},
			{Key: "target_demographics", Label: "Demografía objetivo", Kind: FieldList},
			{Key: "product_categories", Label: "Categorías de producto", Kind: FieldList},
		},
		DefaultSeed: ProfileSeed{
			Name:        "Usuario marca",
			Email:       "marca@conecta.demo",
			CompanyName: "Mi Marca",
		},
	},
	entity.RoleRetailer: {
		Role:        entity.RoleRetailer,
		Label:       "Minorista",
		DefaultView: ViewOverview,
		NavItems: []NavItem{
			{Key: ViewOverview, Label: "Resumen"},
			{Key: ViewInventory, Label: "Inventario"},
			{Key: ViewBrands, Label: "Marcas"},
			{Key: ViewMatches, Label: "Matches"},
			{Key: ViewAnalytics, Label: "Analítica"},
		},
		NewSettings: func() entity.RoleSettings {
			return entity.RetailerSettings{
				StoreLocations:      0,
				AverageOrderValue:   decimal.Zero,
				CustomerBase:        []string{},
				PreferredCategories: []string{},
			}
		},
		// preferred_categories tampoco se expone para retailer.
		FormFields: []FieldSpec{
			{Key: "store_locations", Label: "Puntos de venta", Kind: FieldNumber},
			{Key: "average_order_value", Label: "Ticket promedio", Kind: FieldMoney},
			{Key: "customer_base", Label: "Base de clientes", Kind: FieldList},
		},
		DefaultSeed: ProfileSeed{
			Name:        "Usuario minorista",
			Email:       "minorista@conecta.demo",
			CompanyName: "Mi Tienda",
		},
	},
}

// ForRole devuelve el descriptor del rol. ok es false si el rol no existe.
func ForRole(role entity.Role) (Descriptor, bool) {
	d, ok := descriptors[role]
	return d, ok
}

// MustForRole como ForRole pero entra en pánico con un rol desconocido.
// Solo para call sites donde el rol ya fue validado (p.ej. viene de un
// Account construido por el Session Store).
func MustForRole(role entity.Role) Descriptor {
	d, ok := descriptors[role]
	if !ok {
		panic("roledef: rol desconocido: " + string(role))
	}
	return d
}

// HasView indica si la vista existe para el rol.
func (d Descriptor) HasView(key ViewKey) bool {
	for _, it := range d.NavItems {
		if it.Key == key {
			return true
		}
	}
	return false
}

// AllFormFields devuelve los campos base más los específicos del rol, en el
// orden en que el formulario los renderiza.
func (d Descriptor) AllFormFields() []FieldSpec {
	out := make([]FieldSpec, 0, len(BaseFormFields)+len(d.FormFields))
	out = append(out, BaseFormFields...)
	out = append(out, d.FormFields...)
	return out
}
