// Package navigation implementa el router de vistas del dashboard: la
// máquina de estados que, dentro del área autenticada, asocia rol + clave
// elegida a exactamente un panel, y expone el menú de navegación del rol.
package navigation

import (
	"sync"

	"github.com/jhoicas/Conecta-api/internal/application/session"
	"github.com/jhoicas/Conecta-api/internal/domain/roledef"
)

// Router estado de navegación de un dashboard montado. Efímero: vive
// mientras el dashboard esté montado y no se persiste. No hay pila de
// historial; navegar fuera y volver no restaura sub-estados previos.
//
// Solo lee el Session Store, nunca lo muta (las mutaciones ocurren dentro
// de los paneles que hospeda).
type Router struct {
	mu         sync.Mutex
	store      *session.Store
	activeView roledef.ViewKey
	lastGen    uint64 // generación de login observada; si cambia, reset a overview
}

// NewRouter construye el router en la vista inicial overview.
func NewRouter(store *session.Store) *Router {
	return &Router{
		store:      store,
		activeView: roledef.ViewOverview,
		lastGen:    store.Generation(),
	}
}

// sync resetea a overview si hubo un login desde la última observación
// (propiedad: tras login, activeView == overview sin importar el estado
// anterior). Llamar con r.mu tomado.
func (r *Router) sync(snap session.Snapshot) {
	if snap.Generation != r.lastGen {
		r.lastGen = snap.Generation
		r.activeView = roledef.ViewOverview
	}
}

// ActiveView devuelve la vista activa. Si la clave almacenada no existe para
// el rol actual (solo alcanzable mutando el estado por fuera de la UI), cae
// a overview en lugar de no renderizar nada.
func (r *Router) ActiveView() roledef.ViewKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.store.Snapshot()
	r.sync(snap)
	if !snap.Authenticated {
		return roledef.ViewOverview
	}
	def := roledef.MustForRole(snap.Role)
	if !def.HasView(r.activeView) {
		r.activeView = def.DefaultView
	}
	return r.activeView
}

// SetActiveView selecciona un ítem de navegación. Claves desconocidas para
// el rol actual caen a overview. Devuelve la vista efectiva.
func (r *Router) SetActiveView(key roledef.ViewKey) roledef.ViewKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.store.Snapshot()
	r.sync(snap)
	if !snap.Authenticated {
		r.activeView = roledef.ViewOverview
		return r.activeView
	}
	def := roledef.MustForRole(snap.Role)
	if def.HasView(key) {
		r.activeView = key
	} else {
		r.activeView = def.DefaultView
	}
	return r.activeView
}

// Items devuelve el menú de navegación del rol actual. El menú se genera
// desde la tabla de rol, no se filtra a posteriori: un rol nunca ve los
// paneles de otro. Sin sesión devuelve nil.
func (r *Router) Items() []roledef.NavItem {
	snap := r.store.Snapshot()
	if !snap.Authenticated {
		return nil
	}
	def := roledef.MustForRole(snap.Role)
	items := make([]roledef.NavItem, len(def.NavItems))
	copy(items, def.NavItems)
	return items
}
