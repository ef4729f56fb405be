package usecase

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

// DispensaryUseCase casos de uso de dispensarios (clínica principal y clínica móvil POD).
type DispensaryUseCase struct {
	repo repository.DispensaryRepository
}

// NewDispensaryUseCase construye el caso de uso.
func NewDispensaryUseCase(repo repository.DispensaryRepository) *DispensaryUseCase {
	return &DispensaryUseCase{repo: repo}
}

// List devuelve los dispensarios activos.
func (uc *DispensaryUseCase) List(ctx context.Context) ([]dto.DispensaryResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DispensaryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDispensaryResponse(d))
	}
	return out, nil
}

// GetByID obtiene un dispensario. Devuelve ErrNotFound si no existe.
func (uc *DispensaryUseCase) GetByID(ctx context.Context, id string) (*dto.DispensaryResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	resp := toDispensaryResponse(d)
	return &resp, nil
}

// Create registra un dispensario activo.
func (uc *DispensaryUseCase) Create(ctx context.Context, in dto.CreateDispensaryRequest) (*dto.DispensaryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.IsValidDispensaryType(in.Type) {
		return nil, fmt.Errorf("%w: type debe ser main_clinic o pod_mobile", domain.ErrInvalidInput)
	}
	now := time.Now()
	d := &entity.Dispensary{
		ID:          uuid.New().String(),
		Name:        name,
		Type:        in.Type,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	resp := toDispensaryResponse(d)
	return &resp, nil
}

func toDispensaryResponse(d *entity.Dispensary) dto.DispensaryResponse {
	return dto.DispensaryResponse{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}
