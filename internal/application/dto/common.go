package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse error de validación del formulario de perfil:
// mensajes por campo, nunca un error genérico único.
type ValidationErrorResponse struct {
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}
