package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidRole      = errors.New("rol desconocido")
	ErrInvalidStatus    = errors.New("estado de presencia desconocido")
	ErrUnauthenticated  = errors.New("no hay sesión activa")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrSettingsMismatch = errors.New("las settings no corresponden al rol actual")
	ErrInvalidAvatar    = errors.New("archivo de avatar inválido")
)
