package notifier

import (
	"context"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/frahmantamala/notice-management/internal"
)

// MailDialer matches gomail's Dialer so tests can substitute a fake SMTP hop.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailSender struct {
	dialer MailDialer
	from   string
	logger *slog.Logger
}

func NewSMTPEmailSender(cfg internal.SMTPConfig, logger *slog.Logger) *SMTPEmailSender {
	return &SMTPEmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// NewSMTPEmailSenderWithDialer is the test constructor.
func NewSMTPEmailSenderWithDialer(dialer MailDialer, from string, logger *slog.Logger) *SMTPEmailSender {
	return &SMTPEmailSender{
		dialer: dialer,
		from:   from,
		logger: logger,
	}
}

func (s *SMTPEmailSender) SendEmail(ctx context.Context, msg EmailMessage) Result {
	if len(msg.Recipients) == 0 {
		return Skipped("no recipients")
	}

	if err := ctx.Err(); err != nil {
		return Failed(err.Error())
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.Recipients...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("email send failed", "recipients", len(msg.Recipients), "error", err)
		return Failed(err.Error())
	}

	s.logger.Info("email sent", "recipients", len(msg.Recipients), "subject", msg.Subject)
	return Sent()
}
