package noop

import (
	"context"

	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs messages instead of sending them.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendNotification(_ context.Context, toEmail, toName, subject, body string) error {
	s.log.Info("[NOOP EMAIL]",
		zap.String("to", toEmail),
		zap.String("name", toName),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
