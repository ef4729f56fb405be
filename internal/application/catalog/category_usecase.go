// Package catalog contiene los casos de uso del catálogo de categorías de medicamentos.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/application/ports"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

const classifyTimeout = 10 * time.Second

// CategoryUseCase listado, alta y clasificación asistida por IA de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	llm  ports.LLMService
}

// NewCategoryUseCase construye el caso de uso. llm puede ser nil si no hay API key configurada;
// en ese caso ClassifyMedication devuelve ErrInvalidInput.
func NewCategoryUseCase(repo repository.CategoryRepository, llm ports.LLMService) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, llm: llm}
}

// List devuelve las categorías en su orden de presentación.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create registra una categoría. El nombre es único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// ClassifyMedication pide al LLM la categoría más adecuada para el medicamento.
// Si la sugerencia coincide (sin distinguir mayúsculas) con una categoría existente se devuelve
// su ID; si no, CategoryID es nil y CategoryName lleva la sugerencia tal cual.
func (uc *CategoryUseCase) ClassifyMedication(ctx context.Context, medicationName string) (*dto.ClassifyMedicationResponse, error) {
	medicationName = strings.TrimSpace(medicationName)
	if medicationName == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if uc.llm == nil {
		return nil, fmt.Errorf("%w: clasificación IA no configurada", domain.ErrInvalidInput)
	}
	cats, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}

	// Las llamadas a LLMs pueden demorar varios segundos.
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	suggestion, err := uc.llm.SuggestMedicationCategory(ctx, medicationName, names)
	if err != nil {
		return nil, fmt.Errorf("clasificación IA: %w", err)
	}
	suggestion = strings.TrimSpace(suggestion)
	for _, c := range cats {
		if strings.EqualFold(c.Name, suggestion) {
			id := c.ID
			return &dto.ClassifyMedicationResponse{CategoryID: &id, CategoryName: c.Name}, nil
		}
	}
	return &dto.ClassifyMedicationResponse{CategoryName: suggestion}, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
	}
}
