package entity

import "time"

// Tipos de alerta de stock.
const (
	AlertTypeLowStock     = "low_stock"
	AlertTypeOutOfStock   = "out_of_stock"
	AlertTypeExpiringSoon = "expiring_soon"
	AlertTypeExpired      = "expired"
)

// StockAlert registro de la última alerta enviada por ítem y tipo (para no repetir notificaciones).
type StockAlert struct {
	ID          string
	StockItemID string
	AlertType   string
	IsActive    bool
	LastSentAt  *time.Time
	CreatedAt   time.Time
}
