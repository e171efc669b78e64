package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Conecta-api/internal/application/dto"
	"github.com/jhoicas/Conecta-api/internal/application/navigation"
	"github.com/jhoicas/Conecta-api/internal/domain/roledef"
)

// DashboardHandler expone el router de vistas al shell del dashboard:
// menú del rol, vista activa y selección de vista.
type DashboardHandler struct {
	router *navigation.Router
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(router *navigation.Router) *DashboardHandler {
	return &DashboardHandler{router: router}
}

// Navigation godoc
// @Summary      Menú de navegación del rol actual
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.NavigationResponse
// @Router       /api/dashboard/navigation [get]
func (h *DashboardHandler) Navigation(c *fiber.Ctx) error {
	items := h.router.Items()
	out := make([]dto.NavItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NavItemResponse{Key: string(it.Key), Label: it.Label})
	}
	return c.JSON(dto.NavigationResponse{Role: GetRole(c), Items: out})
}

// GetView godoc
// @Summary      Vista activa del dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.ViewResponse
// @Router       /api/dashboard/view [get]
func (h *DashboardHandler) GetView(c *fiber.Ctx) error {
	return c.JSON(dto.ViewResponse{ActiveView: string(h.router.ActiveView())})
}

// SetView godoc
// @Summary      Seleccionar un ítem de navegación
// @Description  Claves que no existen para el rol actual caen a overview en
// @Description  lugar de no renderizar nada; se devuelve la vista efectiva.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetViewRequest  true  "clave de vista"
// @Success      200   {object}  dto.ViewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/view [put]
func (h *DashboardHandler) SetView(c *fiber.Ctx) error {
	var in dto.SetViewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.View == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "view es requerido"})
	}
	effective := h.router.SetActiveView(roledef.ViewKey(in.View))
	return c.JSON(dto.ViewResponse{ActiveView: string(effective)})
}
