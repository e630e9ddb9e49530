// Package mail implements outbound email delivery over SMTP.
package mail

import (
	"context"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"fenix/config"
	"fenix/internal/domain/service"
	"fenix/internal/errors"
)

// smtpMailer delivers email through a plain SMTP relay using go-mail.
type smtpMailer struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	smtp := cfg.SMTP
	if smtp == nil || smtp.Host == "" {
		return nil, errors.New("smtp host must be configured")
	}

	opts := []gomail.Option{
		gomail.WithPort(smtp.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if smtp.UserName != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(smtp.UserName),
			gomail.WithPassword(smtp.Password),
		)
	}

	client, err := gomail.NewClient(smtp.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	from := cfg.Platform.EmailFrom
	if cfg.Platform.EmailFromName != "" {
		from = cfg.Platform.EmailFromName + " <" + cfg.Platform.EmailFrom + ">"
	}

	return &smtpMailer{
		client: client,
		from:   from,
		logger: logger,
	}, nil
}

// Send delivers a single message. Failures are returned to the caller so the
// outbox can record the attempt and retry later.
func (m *smtpMailer) Send(ctx context.Context, email *service.Email) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err := msg.To(email.To); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, email.Body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	m.logger.DebugContext(ctx, "email sent",
		slog.String("to", email.To),
		slog.String("subject", email.Subject),
	)

	return nil
}
