package ports

import "context"

// Notifier puerto de salida para notificaciones a usuarios y al dueño de la cuenta.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, phoneNumber, message string) error
	// NotifyOwner avisa al dueño de la cuenta (OWNER_EMAIL).
	NotifyOwner(ctx context.Context, title, content string) error
}
