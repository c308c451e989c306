package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"resourcehub-backend/internal/logger"
)

type sendgridEmailService struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewEmailService builds the SendGrid-backed mailer. With no API key
// configured it degrades to logging the message, which keeps local
// development working without credentials.
func NewEmailService(apiKey, from, fromName string) EmailService {
	svc := &sendgridEmailService{from: from, fromName: fromName}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

func (s *sendgridEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	if s.client == nil {
		logger.Info("Email delivery skipped (no API key configured)",
			"to", toEmail, "subject", subject)
		return nil
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail(toName, toEmail),
		body,
		"",
	)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned status %d", resp.StatusCode)
	}
	logger.Debug("Email sent", "to", toEmail, "subject", subject, "status", resp.StatusCode)
	return nil
}
