package dto

import "time"

// SavePreferencesRequest body para PUT /api/preferences. Los campos omitidos conservan su valor.
type SavePreferencesRequest struct {
	LastSelectedDispensaryID *string `json:"last_selected_dispensary_id,omitempty"`
	EmailNotifications       *bool   `json:"email_notifications,omitempty"`
	SMSNotifications         *bool   `json:"sms_notifications,omitempty"`
}

// PreferencesResponse preferencias del usuario autenticado.
type PreferencesResponse struct {
	LastSelectedDispensaryID string     `json:"last_selected_dispensary_id,omitempty"`
	EmailNotifications       bool       `json:"email_notifications"`
	SMSNotifications         bool       `json:"sms_notifications"`
	UpdatedAt                *time.Time `json:"updated_at,omitempty"`
}
