package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Conecta-api/internal/application/guard"
	"github.com/jhoicas/Conecta-api/internal/application/session"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
	"github.com/jhoicas/Conecta-api/pkg/token"
)

// Locals keys que el guard deja disponibles para los handlers.
const (
	LocalAccountID = "account_id"
	LocalRole      = "role"
)

// Cookie alternativa al header Authorization para el token de sesión.
const sessionCookie = "session_token"

// Destinos lógicos de redirección del guard. La sintaxis exacta de la ruta
// es asunto de presentación, pero la existencia del parámetro de retorno
// forma parte del contrato: tras un sign-in exitoso la navegación retoma la
// vista solicitada originalmente.
const (
	signInPath    = "/auth"
	dashboardPath = "/dashboard"
)

// RequireRoles protege un grupo de vistas para el conjunto de roles dado.
//
// La decisión se delega en guard.Authorize y se re-evalúa en cada petición
// (el guard no tiene memoria). El token de sesión prueba que quien llama es
// el dueño de la sesión en curso: sin token válido que coincida con la
// cuenta actual, la petición se trata como no autenticada.
//
// Traducción de decisiones:
//   - Allow                → continúa; account_id y role quedan en Locals.
//   - RedirectToSignIn     → 302 a /auth?type=signin&redirect=<ruta original>.
//   - RedirectToDashboard  → 302 a /dashboard (sin página de error: el
//     usuario autenticado sin permiso vuelve a su propio home).
func RequireRoles(store *session.Store, secret string, roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := store.Snapshot()
		if snap.Authenticated && !callerOwnsSession(c, secret, snap.AccountID) {
			snap = session.Snapshot{}
		}

		decision := guard.Authorize(snap, roles, c.OriginalURL())
		switch decision.Action {
		case guard.RedirectToSignIn:
			target := signInPath + "?type=signin&redirect=" + url.QueryEscape(decision.ReturnPath)
			return c.Redirect(target, fiber.StatusFound)
		case guard.RedirectToDashboard:
			return c.Redirect(dashboardPath, fiber.StatusFound)
		}

		c.Locals(LocalAccountID, snap.AccountID)
		c.Locals(LocalRole, string(snap.Role))
		return c.Next()
	}
}

// callerOwnsSession valida que el token presentado corresponda a la cuenta
// de la sesión en curso.
func callerOwnsSession(c *fiber.Ctx, secret, accountID string) bool {
	tok := bearerToken(c)
	if tok == "" {
		tok = c.Cookies(sessionCookie)
	}
	if tok == "" {
		return false
	}
	id, _, err := token.Parse(secret, tok)
	return err == nil && id == accountID
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetAccountID devuelve el ID de cuenta del contexto (tras RequireRoles).
func GetAccountID(c *fiber.Ctx) string {
	v := c.Locals(LocalAccountID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (tras RequireRoles).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
