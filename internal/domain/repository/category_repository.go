package repository

import (
	"context"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// List devuelve las categorías ordenadas por sort_order y nombre.
	List(ctx context.Context) ([]*entity.Category, error)
}
