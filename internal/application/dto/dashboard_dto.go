package dto

// NavItemResponse entrada del menú de navegación del dashboard.
type NavItemResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// NavigationResponse menú completo del rol actual.
type NavigationResponse struct {
	Role  string            `json:"role"`
	Items []NavItemResponse `json:"items"`
}

// ViewResponse vista activa efectiva del dashboard.
type ViewResponse struct {
	ActiveView string `json:"active_view"`
}

// SetViewRequest selección de un ítem de navegación.
type SetViewRequest struct {
	View string `json:"view" validate:"required"`
}
