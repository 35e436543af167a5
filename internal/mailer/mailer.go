// Package mailer relays messages over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/aanand-mishra/wellbeing-site/internal/config"

	mail "gopkg.in/gomail.v2"
)

// ErrNoRecipients is returned when a message has nobody to go to.
var ErrNoRecipients = errors.New("mailer: no recipients")

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends plain-text mail through a single SMTP server.
type SMTPSender struct {
	from   string
	dialer *mail.Dialer
}

// New returns an SMTP sender, or nil when SMTP_HOST is not set. Callers
// treat a nil Sender as "no transport configured".
func New(cfg config.SMTP) Sender {
	if !cfg.Enabled() {
		return nil
	}
	return NewSMTPSender(cfg)
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	// SMTP_SECURE means implicit TLS (usually port 465). Otherwise gomail
	// upgrades with STARTTLS when the server offers it.
	d.SSL = cfg.Secure
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &SMTPSender{from: cfg.Sender(), dialer: d}
}

// Build assembles the MIME message handed to the dialer.
func (s *SMTPSender) Build(msg Message) (*mail.Message, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m, nil
}

// Send dials, authenticates and delivers msg. gomail has no context
// support; ctx is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.Build(msg)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("could not send email: %w", err)
	}
	return nil
}
