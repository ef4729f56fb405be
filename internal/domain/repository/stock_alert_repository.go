package repository

import (
	"context"
	"time"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// StockAlertRepository registra las alertas enviadas para aplicar el cooldown entre notificaciones.
type StockAlertRepository interface {
	// GetActive devuelve la alerta activa de ese tipo para el ítem, o (nil, nil).
	GetActive(ctx context.Context, stockItemID, alertType string) (*entity.StockAlert, error)
	// MarkSent crea o reactiva la alerta y fija last_sent_at.
	MarkSent(ctx context.Context, stockItemID, alertType string, sentAt time.Time) error
	// Resolve desactiva las alertas activas del ítem de los tipos dados (p. ej. tras reponer stock).
	Resolve(ctx context.Context, stockItemID string, alertTypes ...string) error
}
