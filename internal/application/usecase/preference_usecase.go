package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

// PreferenceUseCase lee y guarda las preferencias del usuario autenticado.
type PreferenceUseCase struct {
	repo           repository.UserPreferenceRepository
	dispensaryRepo repository.DispensaryRepository
}

// NewPreferenceUseCase construye el caso de uso.
func NewPreferenceUseCase(repo repository.UserPreferenceRepository, dispensaryRepo repository.DispensaryRepository) *PreferenceUseCase {
	return &PreferenceUseCase{repo: repo, dispensaryRepo: dispensaryRepo}
}

// Get devuelve las preferencias; sin fila guardada las notificaciones están activas.
func (uc *PreferenceUseCase) Get(ctx context.Context, userID string) (*dto.PreferencesResponse, error) {
	pref, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPreferencesResponse(pref), nil
}

// Save aplica los campos presentes sobre las preferencias actuales.
func (uc *PreferenceUseCase) Save(ctx context.Context, userID string, in dto.SavePreferencesRequest) (*dto.PreferencesResponse, error) {
	pref, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		pref = &entity.UserPreference{UserID: userID, EmailNotifications: true, SMSNotifications: true}
	}
	if in.LastSelectedDispensaryID != nil {
		if id := *in.LastSelectedDispensaryID; id != "" {
			d, err := uc.dispensaryRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if d == nil {
				return nil, fmt.Errorf("%w: dispensario %s no existe", domain.ErrInvalidInput, id)
			}
		}
		pref.LastSelectedDispensaryID = *in.LastSelectedDispensaryID
	}
	if in.EmailNotifications != nil {
		pref.EmailNotifications = *in.EmailNotifications
	}
	if in.SMSNotifications != nil {
		pref.SMSNotifications = *in.SMSNotifications
	}
	pref.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(ctx, pref); err != nil {
		return nil, err
	}
	return toPreferencesResponse(pref), nil
}

func toPreferencesResponse(p *entity.UserPreference) *dto.PreferencesResponse {
	if p == nil {
		return &dto.PreferencesResponse{EmailNotifications: true, SMSNotifications: true}
	}
	updated := p.UpdatedAt
	return &dto.PreferencesResponse{
		LastSelectedDispensaryID: p.LastSelectedDispensaryID,
		EmailNotifications:       p.EmailNotifications,
		SMSNotifications:         p.SMSNotifications,
		UpdatedAt:                &updated,
	}
}
