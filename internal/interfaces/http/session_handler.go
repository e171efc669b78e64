package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Conecta-api/internal/application/dto"
	"github.com/jhoicas/Conecta-api/internal/application/session"
	"github.com/jhoicas/Conecta-api/internal/domain"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/jhoicas/Conecta-api/pkg/config"
	"github.com/jhoicas/Conecta-api/pkg/token"
)

// AuthHandler maneja login, logout y la cuenta de la sesión en curso.
type AuthHandler struct {
	store      *session.Store
	sessionCfg config.SessionConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(store *session.Store, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{store: store, sessionCfg: sessionCfg}
}

// Login godoc
// @Summary      Iniciar sesión con un rol del portal
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "role y seed de perfil opcional"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role es requerido"})
	}

	acc, err := h.store.Login(entity.Role(in.Role), session.ProfileSeed{
		Name:        in.Name,
		Email:       in.Email,
		CompanyName: in.CompanyName,
		Avatar:      in.Avatar,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRole) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROLE", Message: "role debe ser manufacturer, brand o retailer"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	tok, err := token.Generate(h.sessionCfg.Secret, acc.ID, string(acc.Role), h.sessionCfg.Issuer, h.sessionCfg.Expiration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo emitir el token de sesión"})
	}

	// Cookie para navegación del portal; el header Bearer sigue valiendo
	// para clientes de API.
	c.Cookie(&fiber.Cookie{Name: sessionCookie, Value: tok, HTTPOnly: true, Path: "/"})

	return c.JSON(dto.LoginResponse{Token: tok, Account: toAccountResponse(acc)})
}

// Logout godoc
// @Summary      Cerrar sesión (idempotente)
// @Tags         auth
// @Produce      json
// @Success      204  "sin contenido"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Idempotente: sin sesión activa sigue siendo 204, no un error.
	h.store.Logout()
	c.Cookie(&fiber.Cookie{Name: sessionCookie, Value: "", HTTPOnly: true, Path: "/", MaxAge: -1})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Cuenta de la sesión en curso
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.AccountResponse
// @Failure      302  "redirección a sign-in"
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	acc := h.store.Account()
	if acc == nil {
		// El guard ya filtró; defensa ante carreras con logout.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "no hay sesión activa"})
	}
	return c.JSON(toAccountResponse(acc))
}
