package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y el tope de 100 filas.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP: success siempre false, mensaje legible
// y detalles estructurados solo fuera de producción.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OkResponse respuesta genérica de éxito con mensaje.
type OkResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ItemError error por item en operaciones en lote.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}
