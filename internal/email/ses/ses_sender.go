package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/config"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	from        string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender. A non-empty SESEndpoint
// overrides the regional endpoint.
func NewSESSender(ctx context.Context, cfg *config.NotifyConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if cfg.SESEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.SESEndpoint)
		}
	})
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &sesSender{
		client:      client,
		from:        from,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
	}, nil
}

func (s *sesSender) SendNotification(ctx context.Context, toEmail, toName, subject, body string) error {
	text := fmt.Sprintf("Hi %s,\n\n%s\n", toName, body)
	if s.frontendURL != "" {
		text += "\n" + s.frontendURL + "\n"
	}
	htmlBody := s.renderHTML(toName, subject, body)

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{toEmail}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses.SendNotification to %s: %w", toEmail, err)
	}
	if aws.ToString(out.MessageId) == "" {
		return fmt.Errorf("ses.SendNotification to %s: empty message id", toEmail)
	}
	return nil
}

func (s *sesSender) renderHTML(name, subject, body string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8"></head>`)
	b.WriteString(`<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">`)
	fmt.Fprintf(&b, `<h2 style="color: #333;">%s</h2><p>Hi %s,</p>`, html.EscapeString(subject), html.EscapeString(name))
	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(line))
	}
	if s.frontendURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Open receiving dashboard</a></p>`, html.EscapeString(s.frontendURL))
	}
	b.WriteString(`</body></html>`)
	return b.String()
}
