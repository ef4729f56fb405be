package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

var _ repository.UserPreferenceRepository = (*UserPreferenceRepo)(nil)

// UserPreferenceRepo implementación de UserPreferenceRepository sobre PostgreSQL.
type UserPreferenceRepo struct {
	q Querier
}

// NewUserPreferenceRepository construye el adaptador de preferencias.
func NewUserPreferenceRepository(q Querier) *UserPreferenceRepo {
	return &UserPreferenceRepo{q: q}
}

// Get devuelve las preferencias del usuario o (nil, nil).
func (r *UserPreferenceRepo) Get(ctx context.Context, userID string) (*entity.UserPreference, error) {
	query := `
		SELECT user_id, last_selected_dispensary_id, email_notifications, sms_notifications, updated_at
		FROM user_preferences WHERE user_id = $1`
	var p entity.UserPreference
	var dispensaryID *string
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &dispensaryID, &p.EmailNotifications, &p.SMSNotifications, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user preferences: %w", err)
	}
	p.LastSelectedDispensaryID = deref(dispensaryID)
	return &p, nil
}

// Upsert inserta o reemplaza las preferencias del usuario.
func (r *UserPreferenceRepo) Upsert(ctx context.Context, p *entity.UserPreference) error {
	query := `
		INSERT INTO user_preferences (user_id, last_selected_dispensary_id, email_notifications, sms_notifications, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			last_selected_dispensary_id = EXCLUDED.last_selected_dispensary_id,
			email_notifications         = EXCLUDED.email_notifications,
			sms_notifications           = EXCLUDED.sms_notifications,
			updated_at                  = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.UserID, nullIfEmpty(p.LastSelectedDispensaryID), p.EmailNotifications, p.SMSNotifications, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user preferences: %w", err)
	}
	return nil
}
