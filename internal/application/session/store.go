// Package session implementa el Session Store: la única fuente de verdad de
// "quién está conectado y con qué datos". Es un singleton de proceso con
// lifecycle explícito (se construye en main, vive hasta el apagado) e
// inyectable, de modo que los tests puedan usar su propia instancia.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Conecta-api/internal/domain"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/jhoicas/Conecta-api/internal/domain/roledef"
	"github.com/jhoicas/Conecta-api/pkg/logger"
)

// ProfileSeed datos iniciales opcionales para Login. Los campos vacíos se
// rellenan con el seed por defecto del rol (tabla roledef).
type ProfileSeed struct {
	Name        string
	Email       string
	CompanyName string
	Avatar      string
}

// ProfileUpdate actualización parcial del perfil base. Solo se aplican los
// campos no-nil.
type ProfileUpdate struct {
	Name        *string
	Email       *string
	CompanyName *string
}

// Snapshot vista inmutable del estado de sesión que consume el Access Guard.
// Presencia de AccountID implica sesión autenticada; sin sesión no hay
// cuenta, ni siquiera en cero.
type Snapshot struct {
	Authenticated bool
	AccountID     string
	Role          entity.Role
	Generation    uint64
}

// Store estado de sesión a nivel de proceso.
//
// El modelo de origen es un event loop mono-hilo donde cada mutación es una
// asignación atómica; aquí el mutex reproduce esa atomicidad. Las mutaciones
// se aplican en el orden en que llegan al Store, no en el orden en que se
// dispararon: si dos subidas de avatar compiten, gana la que resuelve última
// (last-resolved-wins, carrera aceptada y documentada, sin fencing).
type Store struct {
	mu         sync.RWMutex
	log        *logger.Logger
	account    *entity.Account
	generation uint64 // incrementa en cada Login; el router de vistas lo usa para resetear
}

// NewStore construye el Session Store vacío (sesión no autenticada).
func NewStore(log *logger.Logger) *Store {
	return &Store{log: log}
}

// Login inicia sesión con el rol indicado. Construye el Account con la
// variante de settings del rol (el tag coincide por construcción) y valores
// por defecto para todo campo del seed no aportado. Reemplaza por completo
// cualquier sesión anterior e incrementa la generación, lo que fuerza a los
// dashboards montados a volver a la vista overview.
func (s *Store) Login(role entity.Role, seed ProfileSeed) (*entity.Account, error) {
	def, ok := roledef.ForRole(role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	if seed.Name == "" {
		seed.Name = def.DefaultSeed.Name
	}
	if seed.Email == "" {
		seed.Email = def.DefaultSeed.Email
	}
	if seed.CompanyName == "" {
		seed.CompanyName = def.DefaultSeed.CompanyName
	}

	now := time.Now()
	acc := &entity.Account{
		ID:          uuid.New().String(),
		Name:        seed.Name,
		Email:       seed.Email,
		CompanyName: seed.CompanyName,
		Role:        role,
		Avatar:      seed.Avatar,
		Status:      entity.StatusOnline,
		Settings:    def.NewSettings(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.account = acc
	s.generation++
	s.mu.Unlock()

	s.log.Info().Str("role", string(role)).Str("account_id", acc.ID).Msg("sesión iniciada")
	return acc.Clone(), nil
}

// Logout cierra la sesión y descarta el Account por completo (sin PII
// residual). Idempotente: con sesión ya cerrada es un no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	hadSession := s.account != nil
	s.account = nil
	s.mu.Unlock()

	if hadSession {
		s.log.Info().Msg("sesión cerrada")
	}
}

// UpdateProfile fusiona los campos base aportados. Sin sesión activa es un
// no-op silencioso: por diseño inalcanzable desde la UI, pero se guarda la
// defensa igualmente.
func (s *Store) UpdateProfile(u ProfileUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return
	}
	if u.Name != nil {
		s.account.Name = *u.Name
	}
	if u.Email != nil {
		s.account.Email = *u.Email
	}
	if u.CompanyName != nil {
		s.account.CompanyName = *u.CompanyName
	}
	s.account.UpdatedAt = time.Now()
}

// UpdateRoleSettings reemplaza las settings del rol actual. El tag de la
// variante se valida en la frontera: una variante de otro rol devuelve
// ErrSettingsMismatch como error recuperable en lugar de asumir que el call
// site es correcto. Los campos de lista se normalizan (trim, sin vacíos)
// antes de almacenar.
func (s *Store) UpdateRoleSettings(settings entity.RoleSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return domain.ErrUnauthenticated
	}
	if settings.SettingsRole() != s.account.Role {
		return domain.ErrSettingsMismatch
	}
	s.account.Settings = normalizeSettings(settings)
	s.account.UpdatedAt = time.Now()
	return nil
}

// ApplyForm aplica en una sola sección crítica el resultado de un envío de
// formulario ya validado: campos base más settings del rol. Si la sesión
// cambió entre la validación y el commit (re-login concurrente) y la variante
// ya no corresponde al rol actual, no se escribe nada, tampoco los campos
// base: el todo-o-nada del formulario se mantiene también en esa carrera.
func (s *Store) ApplyForm(u ProfileUpdate, settings entity.RoleSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return domain.ErrUnauthenticated
	}
	if settings.SettingsRole() != s.account.Role {
		return domain.ErrSettingsMismatch
	}
	if u.Name != nil {
		s.account.Name = *u.Name
	}
	if u.Email != nil {
		s.account.Email = *u.Email
	}
	if u.CompanyName != nil {
		s.account.CompanyName = *u.CompanyName
	}
	s.account.Settings = normalizeSettings(settings)
	s.account.UpdatedAt = time.Now()
	return nil
}

// UpdateAvatar reemplaza la referencia de avatar (data URI o URL) sin
// condiciones. El contenido no se valida aquí; un archivo malformado debe
// fallar antes, en la lectura, dejando el avatar anterior intacto.
func (s *Store) UpdateAvatar(avatar string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return
	}
	s.account.Avatar = avatar
	s.account.UpdatedAt = time.Now()
}

// UpdateStatus cambia el estado de presencia (solo informativo).
func (s *Store) UpdateStatus(st entity.Status) error {
	if !entity.IsValidStatus(st) {
		return domain.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return domain.ErrUnauthenticated
	}
	s.account.Status = st
	s.account.UpdatedAt = time.Now()
	return nil
}

// IsAuthenticated indica si hay sesión activa.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != nil
}

// Account devuelve una copia profunda de la cuenta actual, o nil sin sesión.
// Los llamadores nunca comparten el registro mutable interno; toda escritura
// pasa por las operaciones del Store.
func (s *Store) Account() *entity.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account.Clone()
}

// Snapshot devuelve la vista de solo lectura que consume el Access Guard.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Generation: s.generation}
	if s.account != nil {
		snap.Authenticated = true
		snap.AccountID = s.account.ID
		snap.Role = s.account.Role
	}
	return snap
}

// Generation devuelve el contador de logins. Cambia exactamente una vez por
// Login; el router de vistas lo observa para resetear a overview.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// normalizeSettings limpia los campos de lista (trim, sin vacíos) de la
// variante recibida.
func normalizeSettings(settings entity.RoleSettings) entity.RoleSettings {
	switch v := settings.(type) {
	case entity.ManufacturerSettings:
		v.Certifications = entity.CleanList(v.Certifications)
		v.PreferredCategories = entity.CleanList(v.PreferredCategories)
		return v
	case entity.BrandSettings:
		v.MarketSegments = entity.CleanList(v.MarketSegments)
		v.BrandValues = entity.CleanList(v.BrandValues)
		v.TargetDemographics = entity.CleanList(v.TargetDemographics)
		v.ProductCategories = entity.CleanList(v.ProductCategories)
		return v
	case entity.RetailerSettings:
		v.CustomerBase = entity.CleanList(v.CustomerBase)
		v.PreferredCategories = entity.CleanList(v.PreferredCategories)
		return v
	default:
		return settings
	}
}
