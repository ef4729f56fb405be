package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/ports"
	"github.com/jhoicas/clinic-stock-api/pkg/config"
)

var _ ports.Notifier = (*SMTPNotifier)(nil)

// Sender envía mensajes ya armados. *gomail.Dialer lo implementa.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier envía las alertas por correo con gomail. Los SMS solo se registran en el log
// (no hay proveedor de SMS integrado). Sin sender todo queda en el log.
type SMTPNotifier struct {
	sender     Sender
	from       string
	ownerEmail string
	log        zerolog.Logger
}

// NewSMTPNotifier construye el notificador a partir de la configuración SMTP.
func NewSMTPNotifier(cfg config.SMTPConfig, ownerEmail string, log zerolog.Logger) *SMTPNotifier {
	var sender Sender
	if cfg.Enabled() {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return NewNotifierWithSender(sender, cfg.From, ownerEmail, log)
}

// NewNotifierWithSender permite inyectar el sender (tests u otro transporte).
func NewNotifierWithSender(sender Sender, from, ownerEmail string, log zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{sender: sender, from: from, ownerEmail: ownerEmail, log: log}
}

// SendEmail envía un correo de texto plano.
func (n *SMTPNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	if to == "" {
		n.log.Warn().Str("subject", subject).Msg("email sin destinatario, se omite")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.sender == nil {
		n.log.Info().Str("to", to).Str("subject", subject).Msg("[EMAIL] SMTP no configurado, solo log")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar email a %s: %w", to, err)
	}
	n.log.Debug().Str("to", to).Str("subject", subject).Msg("email enviado")
	return nil
}

// SendSMS registra el SMS en el log.
func (n *SMTPNotifier) SendSMS(ctx context.Context, phone, message string) error {
	if phone == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Info().Str("to", phone).Str("message", message).Msg("[SMS]")
	return nil
}

// NotifyOwner envía la notificación al dueño de la clínica (OWNER_EMAIL).
func (n *SMTPNotifier) NotifyOwner(ctx context.Context, title, content string) error {
	if n.ownerEmail == "" {
		n.log.Info().Str("title", title).Msg("OWNER_EMAIL no configurado, notificación al dueño solo en log")
		return nil
	}
	return n.SendEmail(ctx, n.ownerEmail, title, content)
}
