package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

const defaultTransactionLimit = 100

// TransactionUseCase consultas del historial de transacciones.
type TransactionUseCase struct {
	repo repository.StockTransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.StockTransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// ListByItem historial completo del ítem, más reciente primero.
func (uc *TransactionUseCase) ListByItem(ctx context.Context, stockItemID string) ([]dto.StockTransactionResponse, error) {
	txs, err := uc.repo.ListByItem(ctx, stockItemID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

// ListByDispensary últimas transacciones del dispensario. limit <= 0 usa 100.
func (uc *TransactionUseCase) ListByDispensary(ctx context.Context, dispensaryID string, limit int) ([]dto.StockTransactionResponse, error) {
	if dispensaryID == "" {
		return nil, fmt.Errorf("%w: dispensary_id es obligatorio", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	txs, err := uc.repo.ListByDispensary(ctx, dispensaryID, limit)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

func toTransactionResponses(txs []entity.StockTransaction) []dto.StockTransactionResponse {
	out := make([]dto.StockTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

func toTransactionResponse(tx entity.StockTransaction) dto.StockTransactionResponse {
	return dto.StockTransactionResponse{
		ID:               tx.ID,
		StockItemID:      tx.StockItemID,
		DispensaryID:     tx.DispensaryID,
		TransactionType:  tx.TransactionType,
		Quantity:         tx.Quantity,
		PreviousQuantity: tx.PreviousQuantity,
		NewQuantity:      tx.NewQuantity,
		Reason:           tx.Reason,
		Notes:            tx.Notes,
		UserID:           tx.UserID,
		UserName:         tx.UserName,
		ItemName:         tx.ItemName,
		CreatedAt:        tx.CreatedAt,
	}
}
