// Package audit define el sink transversal de auditoría. Los casos de uso lo
// invocan en puntos fijos (entrada, éxito, fallo y una vez por categoría de
// cambio en reconciliaciones); el formato y transporte del registro viven en
// infraestructura. No es parte del contrato de negocio: un sink que falla
// nunca interrumpe la operación.
package audit

import "context"

// Outcomes de un evento de auditoría.
const (
	OutcomeEntry   = "entry"
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeAdded   = "added"
	OutcomeRemoved = "removed"
	OutcomeChanged = "changed"
)

// Event describe qué pasó, sobre qué recurso y quién lo ejecutó.
type Event struct {
	Action   string // ej. "group.add_users", "product.change_owner"
	Actor    string // id del usuario que ejecuta
	Resource string // id del recurso ancla
	Outcome  string
	Message  string
	Details  map[string]any
}

// Sink publica eventos de auditoría.
type Sink interface {
	Publish(ctx context.Context, ev Event)
}

// NopSink descarta todos los eventos (tests).
type NopSink struct{}

// Publish implementa Sink.
func (NopSink) Publish(context.Context, Event) {}
