package inventory

import (
	"context"

	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que cantidad del ítem y transacción registrada cambien juntas o no cambien.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		txRepo repository.StockTransactionRepository,
	) error) error
}

// AlertDispatcher lanza las revisiones de stock bajo y vencimiento de un ítem sin bloquear.
type AlertDispatcher interface {
	Dispatch(stockItemID string)
}
