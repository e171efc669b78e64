package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Conecta-api/internal/application/dto"
	"github.com/jhoicas/Conecta-api/internal/application/profileform"
	"github.com/jhoicas/Conecta-api/internal/application/session"
	"github.com/jhoicas/Conecta-api/internal/domain"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/jhoicas/Conecta-api/pkg/config"
	"github.com/jhoicas/Conecta-api/pkg/logger"
)

// ProfileHandler maneja la edición de perfil: campos base, settings por rol,
// avatar y el formulario polimórfico.
type ProfileHandler struct {
	store     *session.Store
	avatarCfg config.AvatarConfig
	log       *logger.Logger
}

// NewProfileHandler construye el handler de perfil.
func NewProfileHandler(store *session.Store, avatarCfg config.AvatarConfig, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, avatarCfg: avatarCfg, log: log}
}

// UpdateProfile godoc
// @Summary      Actualizar campos base del perfil (merge parcial)
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.store.UpdateProfile(session.ProfileUpdate{
		Name:        in.Name,
		Email:       in.Email,
		CompanyName: in.CompanyName,
	})
	return c.JSON(toAccountResponse(h.store.Account()))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de presencia
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStatusRequest  true  "online | away | busy"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile/status [put]
func (h *ProfileHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.store.UpdateStatus(entity.Status(in.Status)); err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "status debe ser online, away o busy"})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "no hay sesión activa"})
	}
	return c.JSON(toAccountResponse(h.store.Account()))
}

// UpdateSettings godoc
// @Summary      Reemplazar las settings del rol actual
// @Description  El cuerpo se decodifica según el rol de la sesión. Un campo
// @Description  opcional "role" permite declarar la variante; si no coincide
// @Description  con el rol actual la petición se rechaza con 409.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.AccountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/profile/settings [put]
func (h *ProfileHandler) UpdateSettings(c *fiber.Ctx) error {
	acc := h.store.Account()
	if acc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "no hay sesión activa"})
	}

	body := c.Body()

	// Discriminador opcional: sin "role" en el cuerpo se asume la variante
	// del rol actual (el call site interno siempre la construye así).
	var probe struct {
		Role string `json:"role"`
	}
	_ = json.Unmarshal(body, &probe)
	role := acc.Role
	if probe.Role != "" {
		role = entity.Role(probe.Role)
		if !entity.IsValidRole(role) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROLE", Message: "variante de settings desconocida"})
		}
	}

	settings, err := decodeSettings(role, body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	if err := h.store.UpdateRoleSettings(settings); err != nil {
		if errors.Is(err, domain.ErrSettingsMismatch) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SETTINGS_MISMATCH", Message: "las settings no corresponden al rol de la sesión"})
		}
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "no hay sesión activa"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(toAccountResponse(h.store.Account()))
}

// decodeSettings deserializa el cuerpo en la variante del rol indicado.
func decodeSettings(role entity.Role, body []byte) (entity.RoleSettings, error) {
	switch role {
	case entity.RoleManufacturer:
		var in dto.ManufacturerSettingsDTO
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, errors.New("cuerpo inválido para settings de manufacturer")
		}
		if in.ProductionCapacity < 0 {
			return nil, errors.New("production_capacity no puede ser negativo")
		}
		s, err := manufacturerSettingsFromDTO(in)
		if err != nil {
			return nil, errors.New("minimum_order_value debe ser un número >= 0")
		}
		if m, ok := s.(entity.ManufacturerSettings); ok && m.MinimumOrderValue.IsNegative() {
			return nil, errors.New("minimum_order_value no puede ser negativo")
		}
		return s, nil
	case entity.RoleBrand:
		var in dto.BrandSettingsDTO
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, errors.New("cuerpo inválido para settings de brand")
		}
		return brandSettingsFromDTO(in), nil
	case entity.RoleRetailer:
		var in dto.RetailerSettingsDTO
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, errors.New("cuerpo inválido para settings de retailer")
		}
		if in.StoreLocations < 0 {
			return nil, errors.New("store_locations no puede ser negativo")
		}
		s, err := retailerSettingsFromDTO(in)
		if err != nil {
			return nil, errors.New("average_order_value debe ser un número >= 0")
		}
		if r, ok := s.(entity.RetailerSettings); ok && r.AverageOrderValue.IsNegative() {
			return nil, errors.New("average_order_value no puede ser negativo")
		}
		return s, nil
	default:
		return nil, domain.ErrInvalidRole
	}
}

// UpdateAvatar godoc
// @Summary      Reemplazar el avatar
// @Description  Recibe un archivo multipart, lo lee (frontera asíncrona) y
// @Description  almacena la referencia como data URI. Si la lectura falla el
// @Description  avatar anterior queda intacto.
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "imagen de avatar"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile/avatar [put]
func (h *ProfileHandler) UpdateAvatar(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "se requiere el campo de archivo 'file'"})
	}
	if h.avatarCfg.MaxBytes > 0 && fh.Size > int64(h.avatarCfg.MaxBytes) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo excede el tamaño máximo permitido"})
	}

	// Lectura del archivo: única frontera asíncrona de este subsistema. Un
	// fallo aquí deja el avatar anterior intacto (sin estado parcial). Si dos
	// subidas compiten, gana la que termina de leer última.
	f, err := fh.Open()
	if err != nil {
		h.log.Warn().Err(err).Msg("apertura de avatar fallida")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		h.log.Warn().Err(err).Msg("lectura de avatar fallida")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}

	// Referencia opaca: el contenido no se valida, solo se detecta el mime
	// para construir el data URI.
	mime := http.DetectContentType(raw)
	dataURI := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)

	h.store.UpdateAvatar(dataURI)
	return c.JSON(toAccountResponse(h.store.Account()))
}

// GetForm godoc
// @Summary      Esquema y valores iniciales del formulario de perfil
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.ProfileFormResponse
// @Router       /api/profile/form [get]
func (h *ProfileHandler) GetForm(c *fiber.Ctx) error {
	acc := h.store.Account()
	if acc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "no hay sesión activa"})
	}
	schema, err := profileform.SchemaFor(acc.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	fields := make([]dto.FieldSpecResponse, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		fields = append(fields, dto.FieldSpecResponse{Key: f.Key, Label: f.Label, Kind: string(f.Kind)})
	}
	return c.JSON(dto.ProfileFormResponse{
		Role:          string(acc.Role),
		Fields:        fields,
		InitialValues: profileform.InitialValuesFor(acc),
	})
}

// SubmitForm godoc
// @Summary      Enviar el formulario de perfil (todo-o-nada)
// @Description  Valida todos los campos; cualquier error bloquea el envío
// @Description  completo y se responde 422 con mensajes por campo, sin
// @Description  escritura parcial en la sesión.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.AccountResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/profile/form [post]
func (h *ProfileHandler) SubmitForm(c *fiber.Ctx) error {
	acc := h.store.Account()
	if acc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "no hay sesión activa"})
	}

	var values profileform.FormValues
	if err := json.Unmarshal(c.Body(), &values); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	base, settings, fieldErrs := profileform.Apply(values, acc)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code:   "VALIDATION",
			Fields: fieldErrs,
		})
	}

	// Commit en una sola operación del Store: si la sesión cambió desde la
	// validación, no se escribe nada (ni los campos base).
	err := h.store.ApplyForm(session.ProfileUpdate{
		Name:        &base.Name,
		Email:       &base.Email,
		CompanyName: &base.CompanyName,
	}, settings)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SETTINGS_MISMATCH", Message: err.Error()})
	}
	return c.JSON(toAccountResponse(h.store.Account()))
}
