// Package email canal SMTP de los correos salientes.
package email

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/pkg/config"
)

var _ ports.EmailSender = (*SMTPSender)(nil)

// SMTPSender envía por SMTP. Puerto 465 usa TLS implícito; el resto STARTTLS si el servidor lo ofrece.
type SMTPSender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPSender construye el sender. Con la configuración incompleta Send devuelve Skipped.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	s := &SMTPSender{cfg: cfg}
	if cfg.Enabled() {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		d.SSL = cfg.Port == 465
		d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
		s.dialer = d
	}
	return s
}

// Send entrega el mensaje. gomail no acepta context: si ctx vence antes, se devuelve ctx.Err()
// y el envío en curso termina en segundo plano.
func (s *SMTPSender) Send(ctx context.Context, msg ports.Email) (ports.Delivery, error) {
	if s.dialer == nil {
		return ports.Skipped, nil
	}
	m := BuildMessage(s.from(), msg)
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return ports.Delivered, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *SMTPSender) from() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return s.cfg.User
}

// BuildMessage mensaje multipart/alternative con texto plano y HTML.
func BuildMessage(from string, msg ports.Email) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m
}
