package repository

import (
	"context"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// DispensaryRepository define el puerto de persistencia para Dispensary (DIP).
type DispensaryRepository interface {
	Create(ctx context.Context, d *entity.Dispensary) error
	GetByID(ctx context.Context, id string) (*entity.Dispensary, error)
	// ListActive devuelve los dispensarios activos ordenados por nombre.
	ListActive(ctx context.Context) ([]*entity.Dispensary, error)
}
