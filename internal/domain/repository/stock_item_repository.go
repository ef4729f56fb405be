package repository

import (
	"context"
	"time"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para StockItem.
// Los métodos de lectura rellenan CategoryName con un join a categories.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	// Update modifica los campos descriptivos; la cantidad solo cambia vía UpdateQuantity.
	Update(ctx context.Context, item *entity.StockItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	ListByDispensary(ctx context.Context, dispensaryID string) ([]*entity.StockItem, error)
	ListByCategory(ctx context.Context, dispensaryID, categoryID string) ([]*entity.StockItem, error)
	// ListLowStock ítems con quantity <= low_stock_threshold.
	ListLowStock(ctx context.Context, dispensaryID string) ([]*entity.StockItem, error)
	// ListExpiringBefore ítems con fecha de vencimiento <= before, ordenados por vencimiento.
	ListExpiringBefore(ctx context.Context, dispensaryID string, before time.Time) ([]*entity.StockItem, error)
}
