package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

const day = 24 * time.Hour

// AverageDailyConsumption calcula el consumo diario promedio (unidades/día) de un ítem
// a partir de su historial completo de transacciones.
//
// Solo cuentan las transacciones "issued"; received, lost y adjustment no son señal de demanda.
// El período es la diferencia en días completos entre la primera y la última dispensación
// (mínimo 1 día). El historial puede venir en cualquier orden.
// Sin dispensaciones devuelve 0, que no es un error.
func AverageDailyConsumption(history []entity.StockTransaction) (float64, error) {
	var (
		totalIssued      int
		issuedCount      int
		earliest, latest time.Time
	)
	for _, tx := range history {
		if tx.Quantity < 0 {
			return 0, fmt.Errorf("%w: transacción %s del ítem %s con cantidad negativa (%d)",
				domain.ErrDataIntegrity, tx.ID, tx.StockItemID, tx.Quantity)
		}
		if tx.TransactionType != entity.TransactionTypeIssued {
			continue
		}
		totalIssued += tx.Quantity
		if issuedCount == 0 || tx.CreatedAt.Before(earliest) {
			earliest = tx.CreatedAt
		}
		if issuedCount == 0 || tx.CreatedAt.After(latest) {
			latest = tx.CreatedAt
		}
		issuedCount++
	}
	if issuedCount == 0 {
		return 0, nil
	}
	return float64(totalIssued) / float64(elapsedDays(earliest, latest)), nil
}

// elapsedDays días completos entre dos instantes, con mínimo 1.
func elapsedDays(from, to time.Time) int {
	days := int(to.Sub(from) / day)
	if days < 1 {
		return 1
	}
	return days
}
