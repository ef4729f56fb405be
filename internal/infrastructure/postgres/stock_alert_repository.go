package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación de StockAlertRepository sobre PostgreSQL.
// Hay a lo sumo una fila por (stock_item_id, alert_type).
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador de alertas.
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// GetActive devuelve la alerta activa de ese tipo o (nil, nil).
func (r *StockAlertRepo) GetActive(ctx context.Context, stockItemID, alertType string) (*entity.StockAlert, error) {
	query := `
		SELECT id, stock_item_id, alert_type, is_active, last_sent_at, created_at
		FROM stock_alerts WHERE stock_item_id = $1 AND alert_type = $2 AND is_active`
	var a entity.StockAlert
	err := r.q.QueryRow(ctx, query, stockItemID, alertType).Scan(
		&a.ID, &a.StockItemID, &a.AlertType, &a.IsActive, &a.LastSentAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active alert: %w", err)
	}
	return &a, nil
}

// MarkSent crea o reactiva la alerta y fija last_sent_at.
func (r *StockAlertRepo) MarkSent(ctx context.Context, stockItemID, alertType string, sentAt time.Time) error {
	query := `
		INSERT INTO stock_alerts (id, stock_item_id, alert_type, is_active, last_sent_at, created_at)
		VALUES ($1, $2, $3, true, $4, $4)
		ON CONFLICT (stock_item_id, alert_type)
		DO UPDATE SET is_active = true, last_sent_at = EXCLUDED.last_sent_at`
	if _, err := r.q.Exec(ctx, query, uuid.New().String(), stockItemID, alertType, sentAt); err != nil {
		return fmt.Errorf("mark alert sent: %w", err)
	}
	return nil
}

// Resolve desactiva las alertas activas del ítem de los tipos dados.
func (r *StockAlertRepo) Resolve(ctx context.Context, stockItemID string, alertTypes ...string) error {
	if len(alertTypes) == 0 {
		return nil
	}
	query := `
		UPDATE stock_alerts SET is_active = false
		WHERE stock_item_id = $1 AND alert_type = ANY($2) AND is_active`
	if _, err := r.q.Exec(ctx, query, stockItemID, alertTypes); err != nil {
		return fmt.Errorf("resolve alerts: %w", err)
	}
	return nil
}
