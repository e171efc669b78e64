package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Conecta-api/internal/application/navigation"
	"github.com/jhoicas/Conecta-api/internal/application/session"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/jhoicas/Conecta-api/pkg/config"
	"github.com/jhoicas/Conecta-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store      *session.Store
	ViewRouter *navigation.Router
	SessionCfg config.SessionConfig
	AvatarCfg  config.AvatarConfig
	Log        *logger.Logger
}

// Router registra las rutas de la API.
//
// Todo lo que cuelga del grupo protegido pasa por RequireRoles, que se
// re-evalúa en cada petición: sin sesión → 302 a sign-in con la ruta de
// retorno; rol no permitido → 302 al dashboard propio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	anyRole := entity.ValidRoles()
	secret := deps.SessionCfg.Secret

	// Destinos lógicos de redirección. La SPA los renderiza; aquí solo
	// existen como contrato: /auth recibe el parámetro de retorno y
	// /dashboard es el home del rol autenticado.
	app.Get(signInPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page":     "signin",
			"type":     c.Query("type", "signin"),
			"redirect": c.Query("redirect", dashboardPath),
		})
	})
	app.Get(dashboardPath, RequireRoles(deps.Store, secret, anyRole...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page":        "dashboard",
			"role":        GetRole(c),
			"active_view": string(deps.ViewRouter.ActiveView()),
		})
	})

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Store, deps.SessionCfg)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Sesión en curso (protegido, cualquier rol)
	api.Get("/me", RequireRoles(deps.Store, secret, anyRole...), authHandler.Me)

	// Perfil (protegido, cualquier rol)
	profile := api.Group("/profile", RequireRoles(deps.Store, secret, anyRole...))
	profileHandler := NewProfileHandler(deps.Store, deps.AvatarCfg, deps.Log)
	profile.Put("/", profileHandler.UpdateProfile)
	profile.Put("/status", profileHandler.UpdateStatus)
	profile.Put("/settings", profileHandler.UpdateSettings)
	profile.Put("/avatar", profileHandler.UpdateAvatar)
	profile.Get("/form", profileHandler.GetForm)
	profile.Post("/form", profileHandler.SubmitForm)

	// Dashboard (protegido, cualquier rol): el menú mismo se genera desde
	// el rol, nunca se filtra a posteriori.
	dashboard := api.Group("/dashboard", RequireRoles(deps.Store, secret, anyRole...))
	dashboardHandler := NewDashboardHandler(deps.ViewRouter)
	dashboard.Get("/navigation", dashboardHandler.Navigation)
	dashboard.Get("/view", dashboardHandler.GetView)
	dashboard.Put("/view", dashboardHandler.SetView)

	// Paneles restringidos por rol: un rol nunca ve el panel de otro.
	api.Get("/manufacturer/panel",
		RequireRoles(deps.Store, secret, entity.RoleManufacturer),
		panelHandler("manufacturer"))
	api.Get("/brand/panel",
		RequireRoles(deps.Store, secret, entity.RoleBrand),
		panelHandler("brand"))
	api.Get("/retailer/panel",
		RequireRoles(deps.Store, secret, entity.RoleRetailer),
		panelHandler("retailer"))
}

// panelHandler placeholder del contenido de panel por rol; el renderizado
// real es asunto de la capa de presentación.
func panelHandler(panel string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"panel": panel, "role": GetRole(c)})
	}
}
