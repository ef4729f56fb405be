package repository

import (
	"context"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	TouchLastSignedIn(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// ListStockControllers devuelve los usuarios con rol stock_controller, manager o founder
	// junto con sus preferencias de notificación (true por defecto si no hay fila).
	ListStockControllers(ctx context.Context) ([]entity.StockController, error)
}
