package dto

// UpdateProfileRequest actualización parcial del perfil base; solo se
// aplican los campos presentes.
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Email       *string `json:"email" validate:"omitempty,email"`
	CompanyName *string `json:"company_name" validate:"omitempty,min=2,max=200"`
}

// UpdateStatusRequest cambio de estado de presencia.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online away busy"`
}

// FieldSpecResponse un campo del esquema de formulario del rol.
type FieldSpecResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// ProfileFormResponse esquema + valores iniciales para renderizar el
// formulario de perfil del rol actual.
type ProfileFormResponse struct {
	Role          string              `json:"role"`
	Fields        []FieldSpecResponse `json:"fields"`
	InitialValues map[string]string   `json:"initial_values"`
}
