package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

// AdjustQuantityUseCase registra una transacción de stock (issued, received, lost, adjustment)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type AdjustQuantityUseCase struct {
	txRunner TxRunner
	alerts   AlertDispatcher
}

// NewAdjustQuantityUseCase construye el caso de uso.
func NewAdjustQuantityUseCase(txRunner TxRunner, alerts AlertDispatcher) *AdjustQuantityUseCase {
	return &AdjustQuantityUseCase{txRunner: txRunner, alerts: alerts}
}

// Adjust bloquea el ítem, calcula la nueva cantidad, la persiste junto con la transacción
// y, tras el commit, lanza la revisión de alertas.
func (uc *AdjustQuantityUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustQuantityRequest) (*dto.AdjustQuantityResponse, error) {
	if in.StockItemID == "" {
		return nil, fmt.Errorf("%w: stock_item_id es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.IsValidTransactionType(in.TransactionType) {
		return nil, fmt.Errorf("%w: transaction_type debe ser issued, received, lost o adjustment", domain.ErrInvalidInput)
	}

	var (
		item *entity.StockItem
		tx   *entity.StockTransaction
	)
	err := uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, txRepo repository.StockTransactionRepository) error {
		var err error
		item, err = itemRepo.GetForUpdate(ctx, in.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		newQty, err := domaininv.ApplyTransaction(item.Quantity, in.TransactionType, in.Quantity)
		if err != nil {
			return err
		}
		now := time.Now()
		tx = &entity.StockTransaction{
			ID:               uuid.New().String(),
			StockItemID:      item.ID,
			DispensaryID:     item.DispensaryID,
			TransactionType:  in.TransactionType,
			Quantity:         in.Quantity,
			PreviousQuantity: item.Quantity,
			NewQuantity:      newQty,
			Reason:           in.Reason,
			Notes:            in.Notes,
			UserID:           userID,
			CreatedAt:        now,
			ItemName:         item.Name,
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, newQty); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		item.Quantity = newQty
		item.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.alerts.Dispatch(item.ID)
	return &dto.AdjustQuantityResponse{
		Item:        *toStockItemResponse(item),
		Transaction: toTransactionResponse(*tx),
	}, nil
}
