package email

import (
	"fmt"

	"gigwork_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// SMTPSender sends mail through an SMTP relay using gomail.
type SMTPSender struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg Config) *SMTPSender {
	s := &SMTPSender{cfg: cfg}
	if s.IsConfigured() {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *SMTPSender) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.FromEmail != ""
}

func (s *SMTPSender) Send(email *Email) error {
	if email.To == "" {
		return fmt.Errorf("no recipient specified")
	}

	if !s.IsConfigured() {
		logger.Warn("email transport not configured, dropping message",
			"to", email.To, "subject", email.Subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	return s.dialer.DialAndSend(m)
}
