package mail

import (
	"context"
	"log/slog"

	"rentease/internal/pkg/config"
	"rentease/internal/pkg/errs"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers one message. Implementations must be safe for
// concurrent use by the dispatcher worker.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewSender returns the SMTP sender when a host is configured, and a
// logging no-op otherwise so local environments run without a relay.
func NewSender(cfg config.MailConfig) Sender {
	if cfg.Host == "" {
		slog.Info("smtp not configured, emails will be logged only")
		return &logSender{}
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return errs.Wrap(err, "failed to send email")
	}
	return nil
}

type logSender struct{}

func (s *logSender) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("email suppressed", "to", to, "subject", subject)
	return nil
}
