package email

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/notify"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type emailPublisher struct {
	users  port.UserRepository
	sender port.EmailSender
	log    *zap.Logger
}

// NewPublisher creates a NotificationPublisher that emails every affected user.
func NewPublisher(users port.UserRepository, sender port.EmailSender, log *zap.Logger) port.NotificationPublisher {
	return &emailPublisher{users: users, sender: sender, log: log}
}

// Publish fails if any recipient could not be reached, so the whole event is
// retried. Unknown and inactive users are skipped.
func (p *emailPublisher) Publish(ctx context.Context, ev domain.NotificationEvent) error {
	subject, body := notify.Render(ev)

	var errs []error
	for _, id := range ev.AffectedUserIDs {
		user, err := p.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				p.log.Warn("notification recipient not found", zap.String("user_id", id.String()))
				continue
			}
			errs = append(errs, err)
			continue
		}
		if !user.IsActive {
			continue
		}
		if err := p.sender.SendNotification(ctx, user.Email, user.FullName, subject, body); err != nil {
			errs = append(errs, fmt.Errorf("sending to %s: %w", user.ID, err))
		}
	}
	return errors.Join(errs...)
}
