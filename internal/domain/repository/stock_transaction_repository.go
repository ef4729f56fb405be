package repository

import (
	"context"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// StockTransactionRepository define el puerto de persistencia para StockTransaction.
// Las transacciones son append-only.
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	// ListByItem historial completo del ítem, más reciente primero. Es la entrada de la analítica.
	ListByItem(ctx context.Context, stockItemID string) ([]entity.StockTransaction, error)
	// ListByDispensary transacciones del dispensario con nombre de usuario e ítem, más reciente primero.
	ListByDispensary(ctx context.Context, dispensaryID string, limit int) ([]entity.StockTransaction, error)
}
