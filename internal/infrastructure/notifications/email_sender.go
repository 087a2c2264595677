package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/pkg/config"
	"github.com/Bukassi600104/ultraclean/backend/pkg/retry"
)

// Dialer delivers composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends transactional email over SMTP
type SMTPSender struct {
	dialer   Dialer
	from     string
	fromName string
	retryCfg retry.Config
}

// NewSMTPSender creates a sender from SMTP configuration
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.FromAddress == "" {
		return nil, fmt.Errorf("SMTP_HOST and SMTP_FROM_ADDRESS must be set")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewSMTPSenderWithDialer(dialer, cfg.FromAddress, cfg.FromName), nil
}

// NewSMTPSenderWithDialer creates a sender around an existing dialer
func NewSMTPSenderWithDialer(dialer Dialer, from, fromName string) *SMTPSender {
	return &SMTPSender{
		dialer:   dialer,
		from:     from,
		fromName: fromName,
		retryCfg: retry.DeliveryConfig(),
	}
}

// WithRetryConfig overrides the delivery retry policy
func (s *SMTPSender) WithRetryConfig(cfg retry.Config) *SMTPSender {
	s.retryCfg = cfg
	return s
}

// Send delivers one message, retrying transient failures
func (s *SMTPSender) Send(ctx context.Context, msg entities.EmailMessage) error {
	if msg.To == "" {
		return fmt.Errorf("email recipient is required")
	}

	m := s.compose(msg)

	return retry.DoWithLog(ctx, s.retryCfg, "SMTP",
		func() error {
			return s.dialer.DialAndSend(m)
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Ctx(ctx).Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("retry_in", nextDelay).
				Str("subject", msg.Subject).
				Msg("email delivery attempt failed")
		},
	)
}

func (s *SMTPSender) compose(msg entities.EmailMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	return m
}
