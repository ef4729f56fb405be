package dto

import "time"

// CreateDispensaryRequest body para POST /api/dispensaries.
type CreateDispensaryRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // main_clinic | pod_mobile
	Description string `json:"description,omitempty"`
}

// DispensaryResponse salida de un dispensario.
type DispensaryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
