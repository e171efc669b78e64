package entity

import "time"

// Roles válidos para Account. El rol se fija en el registro y es inmutable
// durante la vida de la cuenta (no existe operación de migración de rol).
const (
	RoleManufacturer Role = "manufacturer"
	RoleBrand        Role = "brand"
	RoleRetailer     Role = "retailer"
)

// Role categoría fija de la cuenta; determina permisos y superficie de UI.
type Role string

// ValidRoles devuelve el conjunto de roles válidos.
func ValidRoles() []Role {
	return []Role{RoleManufacturer, RoleBrand, RoleRetailer}
}

// IsValidRole indica si el string corresponde a un rol válido.
func IsValidRole(role Role) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// Estados de presencia (solo informativos, no afectan permisos).
const (
	StatusOnline Status = "online"
	StatusAway   Status = "away"
	StatusBusy   Status = "busy"
)

// Status presencia del usuario.
type Status string

// IsValidStatus indica si el string corresponde a un estado válido.
func IsValidStatus(s Status) bool {
	return s == StatusOnline || s == StatusAway || s == StatusBusy
}

// Account representa la cuenta autenticada del portal (una por sesión).
//
// Invariante: Settings siempre es la variante correspondiente a Role;
// se garantiza construyendo la cuenta desde la tabla de roles y validando
// el tag en cada actualización de settings.
type Account struct {
	ID          string
	Name        string
	Email       string
	CompanyName string
	Role        Role   // inmutable después de la construcción
	Avatar      string // data URI o URL; opaco, no se valida el contenido
	Status      Status
	Settings    RoleSettings
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone devuelve una copia profunda de la cuenta. Los lectores del Session
// Store nunca reciben el registro mutable interno.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Settings != nil {
		cp.Settings = a.Settings.clone()
	}
	return &cp
}
