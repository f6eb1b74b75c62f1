package mailer

import (
	"context"
	"fmt"

	"github.com/Bange254/Bttshoes/internal/pkg/config"

	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(cfg config.EmailConfig) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.APIKey),
		from:   fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail),
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}

var _ Mailer = (*ResendMailer)(nil)
