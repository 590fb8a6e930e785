package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendNotification(ctx context.Context, toEmail, toName, subject, body string) error
}
