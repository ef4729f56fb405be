package inventory

import (
	"fmt"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// ApplyTransaction calcula la nueva cantidad en mano tras una transacción.
//
//	received:   anterior + cantidad
//	issued:     max(0, anterior - cantidad)
//	lost:       max(0, anterior - cantidad)
//	adjustment: cantidad (conteo físico absoluto)
//
// La cantidad es una magnitud: debe ser >= 0, y 0 solo tiene sentido en un adjustment.
func ApplyTransaction(previous int, transactionType string, quantity int) (int, error) {
	if quantity < 0 {
		return 0, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if quantity == 0 && transactionType != entity.TransactionTypeAdjustment {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	switch transactionType {
	case entity.TransactionTypeReceived:
		return previous + quantity, nil
	case entity.TransactionTypeIssued, entity.TransactionTypeLost:
		return max(0, previous-quantity), nil
	case entity.TransactionTypeAdjustment:
		return quantity, nil
	}
	return 0, fmt.Errorf("%w: tipo de transacción %q no soportado", domain.ErrInvalidInput, transactionType)
}
