package audit

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

var _ audit.Sink = (*ZerologSink)(nil)

// ZerologSink publica los eventos de auditoría como registros estructurados
// del logger de la aplicación.
type ZerologSink struct {
	log *logger.Logger
}

// NewZerologSink construye el sink sobre el logger inyectado.
func NewZerologSink(log *logger.Logger) *ZerologSink {
	return &ZerologSink{log: log}
}

// Publish implementa audit.Sink. Un fallo de logging nunca interrumpe la operación.
func (s *ZerologSink) Publish(_ context.Context, ev audit.Event) {
	e := s.log.Info()
	if ev.Outcome == audit.OutcomeError {
		e = s.log.Warn()
	}
	e = e.Str("audit", ev.Action).
		Str("outcome", ev.Outcome).
		Str("actor", ev.Actor).
		Str("resource", ev.Resource)
	if len(ev.Details) > 0 {
		e = e.Fields(ev.Details)
	}
	e.Msg(ev.Message)
}
