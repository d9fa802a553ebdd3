package dto

type CrearClienteRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,min=1,max=150"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Telefono        *string `json:"telefono"         validate:"omitempty,max=30"`
	DireccionFiscal *string `json:"direccion_fiscal" validate:"omitempty,max=255"`
}

// ActualizarClienteRequest updates only the fields present in the body;
// absent fields keep their stored value.
type ActualizarClienteRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=1,max=150"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Telefono        *string `json:"telefono"         validate:"omitempty,max=30"`
	DireccionFiscal *string `json:"direccion_fiscal" validate:"omitempty,max=255"`
}

type ClienteResponse struct {
	ID              uint    `json:"id"`
	Nombre          string  `json:"nombre"`
	Email           *string `json:"email"`
	Telefono        *string `json:"telefono"`
	DireccionFiscal *string `json:"direccion_fiscal"`
}
