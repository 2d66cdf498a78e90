package mailer

import (
	"context"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
)

// Message is a rendered outbound email.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// Mailer sends transactional email. Delivery is best-effort everywhere in
// this service; callers log and discard errors.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sendgridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewSendGrid builds a SendGrid-backed mailer.
func NewSendGrid(cfg config.MailConfig) Mailer {
	return &sendgridMailer{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddress,
	}
}

func (m *sendgridMailer) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(m.fromName, m.fromAddr)
	to := sgmail.NewEmail("", msg.To)
	email := sgmail.NewSingleEmail(from, msg.Subject, to, "", msg.HTMLBody)
	_, err := m.client.SendWithContext(ctx, email)
	return err
}

type logMailer struct {
	logger *zap.Logger
}

// NewLogMailer returns a mailer that only logs, used when no SendGrid key
// is configured.
func NewLogMailer(logger *zap.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("email (log-only mailer)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// FromConfig picks the SendGrid mailer when an API key is present and the
// log-only mailer otherwise.
func FromConfig(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY not set; outbound email will only be logged")
		return NewLogMailer(logger)
	}
	return NewSendGrid(cfg)
}
