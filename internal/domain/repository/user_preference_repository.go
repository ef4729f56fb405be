package repository

import (
	"context"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// UserPreferenceRepository define el puerto de persistencia de preferencias de usuario.
type UserPreferenceRepository interface {
	// Get devuelve (nil, nil) si el usuario aún no tiene preferencias.
	Get(ctx context.Context, userID string) (*entity.UserPreference, error)
	Upsert(ctx context.Context, pref *entity.UserPreference) error
}
