package entity

import "time"

// UserPreference preferencias por usuario: último dispensario elegido y canales de notificación.
type UserPreference struct {
	UserID                   string
	LastSelectedDispensaryID string
	EmailNotifications       bool
	SMSNotifications         bool
	UpdatedAt                time.Time
}
