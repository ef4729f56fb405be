package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

const initialStockReason = "Stock inicial"

// StockUseCase CRUD y consultas de ítems de stock. La cantidad solo cambia por transacciones
// (alta con stock inicial o AdjustQuantityUseCase).
type StockUseCase struct {
	txRunner           TxRunner
	itemRepo           repository.StockItemRepository
	dispensaryRepo     repository.DispensaryRepository
	categoryRepo       repository.CategoryRepository
	alerts             AlertDispatcher
	expiryWindowMonths int
	now                func() time.Time
}

// NewStockUseCase construye el caso de uso. expiryWindowMonths define qué se considera
// "próximo a vencer" en ListExpiring.
func NewStockUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	dispensaryRepo repository.DispensaryRepository,
	categoryRepo repository.CategoryRepository,
	alerts AlertDispatcher,
	expiryWindowMonths int,
) *StockUseCase {
	if expiryWindowMonths <= 0 {
		expiryWindowMonths = 3
	}
	return &StockUseCase{
		txRunner:           txRunner,
		itemRepo:           itemRepo,
		dispensaryRepo:     dispensaryRepo,
		categoryRepo:       categoryRepo,
		alerts:             alerts,
		expiryWindowMonths: expiryWindowMonths,
		now:                time.Now,
	}
}

// Create registra el ítem y, si trae cantidad, la transacción "received" de stock inicial
// en la misma transacción de BD. Tras el commit se lanzan las revisiones de alertas.
func (uc *StockUseCase) Create(ctx context.Context, userID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	threshold := entity.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := uc.ensureDispensary(ctx, in.DispensaryID); err != nil {
		return nil, err
	}
	category, err := uc.loadCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	item := &entity.StockItem{
		ID:                uuid.New().String(),
		DispensaryID:      in.DispensaryID,
		CategoryID:        category.ID,
		CategoryName:      category.Name,
		Name:              name,
		Quantity:          in.Quantity,
		UnitPrice:         in.UnitPrice,
		BatchNumber:       strings.TrimSpace(in.BatchNumber),
		ExpirationDate:    in.ExpirationDate,
		Source:            strings.TrimSpace(in.Source),
		LowStockThreshold: threshold,
		Notes:             in.Notes,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err = uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, txRepo repository.StockTransactionRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if item.Quantity == 0 {
			return nil
		}
		return txRepo.Create(ctx, &entity.StockTransaction{
			ID:               uuid.New().String(),
			StockItemID:      item.ID,
			DispensaryID:     item.DispensaryID,
			TransactionType:  entity.TransactionTypeReceived,
			Quantity:         item.Quantity,
			PreviousQuantity: 0,
			NewQuantity:      item.Quantity,
			Reason:           initialStockReason,
			UserID:           userID,
			CreatedAt:        now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("crear ítem de stock: %w", err)
	}
	uc.alerts.Dispatch(item.ID)
	return toStockItemResponse(item), nil
}

// Update modifica los campos descriptivos del ítem. No toca la cantidad.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		item.Name = name
	}
	if in.CategoryID != nil {
		category, err := uc.loadCategory(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = category.ID
		item.CategoryName = category.Name
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
		}
		item.UnitPrice = in.UnitPrice
	}
	if in.BatchNumber != nil {
		item.BatchNumber = strings.TrimSpace(*in.BatchNumber)
	}
	if in.ExpirationDate != nil {
		item.ExpirationDate = in.ExpirationDate
	}
	if in.Source != nil {
		item.Source = strings.TrimSpace(*in.Source)
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrInvalidInput)
		}
		item.LowStockThreshold = *in.LowStockThreshold
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.UpdatedAt = uc.now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	// El umbral o el vencimiento pueden haber cambiado.
	uc.alerts.Dispatch(item.ID)
	return toStockItemResponse(item), nil
}

// Delete elimina el ítem (sus transacciones se borran en cascada).
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(ctx, id)
}

// GetByID obtiene un ítem. Devuelve ErrNotFound si no existe.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toStockItemResponse(item), nil
}

// ListByDispensary ítems del dispensario ordenados por nombre.
func (uc *StockUseCase) ListByDispensary(ctx context.Context, dispensaryID string) ([]dto.StockItemResponse, error) {
	if dispensaryID == "" {
		return nil, fmt.Errorf("%w: dispensary_id es obligatorio", domain.ErrInvalidInput)
	}
	return toStockItemResponses(uc.itemRepo.ListByDispensary(ctx, dispensaryID))
}

// ListByCategory ítems del dispensario en una categoría.
func (uc *StockUseCase) ListByCategory(ctx context.Context, dispensaryID, categoryID string) ([]dto.StockItemResponse, error) {
	if dispensaryID == "" || categoryID == "" {
		return nil, fmt.Errorf("%w: dispensary_id y category_id son obligatorios", domain.ErrInvalidInput)
	}
	return toStockItemResponses(uc.itemRepo.ListByCategory(ctx, dispensaryID, categoryID))
}

// ListLowStock ítems con cantidad <= umbral, de menor a mayor cantidad.
func (uc *StockUseCase) ListLowStock(ctx context.Context, dispensaryID string) ([]dto.StockItemResponse, error) {
	if dispensaryID == "" {
		return nil, fmt.Errorf("%w: dispensary_id es obligatorio", domain.ErrInvalidInput)
	}
	return toStockItemResponses(uc.itemRepo.ListLowStock(ctx, dispensaryID))
}

// ListExpiring ítems vencidos o que vencen dentro de la ventana configurada.
func (uc *StockUseCase) ListExpiring(ctx context.Context, dispensaryID string) ([]dto.StockItemResponse, error) {
	if dispensaryID == "" {
		return nil, fmt.Errorf("%w: dispensary_id es obligatorio", domain.ErrInvalidInput)
	}
	cutoff := uc.now().AddDate(0, uc.expiryWindowMonths, 0)
	return toStockItemResponses(uc.itemRepo.ListExpiringBefore(ctx, dispensaryID, cutoff))
}

func (uc *StockUseCase) ensureDispensary(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: dispensary_id es obligatorio", domain.ErrInvalidInput)
	}
	d, err := uc.dispensaryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("%w: dispensario %s no existe", domain.ErrInvalidInput, id)
	}
	return nil
}

func (uc *StockUseCase) loadCategory(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: category_id es obligatorio", domain.ErrInvalidInput)
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: categoría %s no existe", domain.ErrInvalidInput, id)
	}
	return c, nil
}

func toStockItemResponses(items []*entity.StockItem, err error) ([]dto.StockItemResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toStockItemResponse(it))
	}
	return out, nil
}

func toStockItemResponse(it *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:                it.ID,
		DispensaryID:      it.DispensaryID,
		CategoryID:        it.CategoryID,
		CategoryName:      it.CategoryName,
		Name:              it.Name,
		Quantity:          it.Quantity,
		UnitPrice:         it.UnitPrice,
		BatchNumber:       it.BatchNumber,
		ExpirationDate:    it.ExpirationDate,
		Source:            it.Source,
		LowStockThreshold: it.LowStockThreshold,
		Notes:             it.Notes,
		IsLowStock:        it.IsLowStock(),
		CreatedBy:         it.CreatedBy,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}
