package noop

import (
	"context"

	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/notify"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type noopPublisher struct {
	log *zap.Logger
}

// NewPublisher creates a NotificationPublisher that only logs events.
func NewPublisher(log *zap.Logger) port.NotificationPublisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) Publish(_ context.Context, ev domain.NotificationEvent) error {
	subject, _ := notify.Render(ev)
	p.log.Info("[NOOP NOTIFY]",
		zap.String("kind", string(ev.Kind)),
		zap.String("entity_id", ev.EntityID.String()),
		zap.Int("recipients", len(ev.AffectedUserIDs)),
		zap.String("subject", subject))
	return nil
}
