// Package guard implementa el Access Guard: la función de decisión que
// permite o redirige la navegación hacia una vista protegida.
package guard

import (
	"github.com/jhoicas/Conecta-api/internal/application/session"
	"github.com/jhoicas/Conecta-api/internal/domain/entity"
)

// Action resultado posible de una autorización.
type Action int

const (
	// Allow la sesión puede ver la vista solicitada.
	Allow Action = iota
	// RedirectToSignIn sin sesión: ir a sign-in llevando la ruta original
	// para retomar la navegación tras autenticarse.
	RedirectToSignIn
	// RedirectToDashboard sesión autenticada pero de rol no permitido: se
	// devuelve al usuario a su propio home, sin página de error.
	RedirectToDashboard
)

// Decision resultado de Authorize. ReturnPath solo tiene valor cuando la
// acción es RedirectToSignIn.
type Decision struct {
	Action     Action
	ReturnPath string
}

// Authorize decide el acceso a una vista protegida. Función pura de
// (snapshot, allowed, currentPath): sin memoria entre llamadas, debe
// re-evaluarse en cada navegación.
//
// Algoritmo:
//  1. Sin autenticar → RedirectToSignIn con la ruta actual como retorno.
//  2. Rol fuera del conjunto permitido → RedirectToDashboard.
//  3. En otro caso → Allow.
func Authorize(snap session.Snapshot, allowed []entity.Role, currentPath string) Decision {
	if !snap.Authenticated {
		return Decision{Action: RedirectToSignIn, ReturnPath: currentPath}
	}
	for _, r := range allowed {
		if snap.Role == r {
			return Decision{Action: Allow}
		}
	}
	return Decision{Action: RedirectToDashboard}
}
