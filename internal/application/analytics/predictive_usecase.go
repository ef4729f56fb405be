// Package analytics contiene los casos de uso de analítica predictiva de stock:
// consumo diario, días hasta agotamiento y recomendación de reorden por ítem y por dispensario.
package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

const defaultWorkers = 8 // lecturas de historial concurrentes por dispensario

// PredictiveUseCase expone el motor de analítica predictiva sobre los repositorios.
// El cálculo es puro (paquete domain/inventory); aquí solo se leen historiales y se ordena.
type PredictiveUseCase struct {
	itemRepo repository.StockItemRepository
	txRepo   repository.StockTransactionRepository
	policy   inventory.Policy
	workers  int
	log      zerolog.Logger
}

// NewPredictiveUseCase construye el caso de uso. policy trae los valores configurados
// (lead time, factor de seguridad, días de suministro); workers <= 0 usa 8.
func NewPredictiveUseCase(
	itemRepo repository.StockItemRepository,
	txRepo repository.StockTransactionRepository,
	policy inventory.Policy,
	workers int,
	log zerolog.Logger,
) *PredictiveUseCase {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &PredictiveUseCase{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		policy:   policy,
		workers:  workers,
		log:      log,
	}
}

// Policy devuelve la política configurada.
func (uc *PredictiveUseCase) Policy() inventory.Policy { return uc.policy }

// GetItemAnalytics analiza un ítem dado su cantidad actual. leadTimeDays == 0 usa el valor configurado.
func (uc *PredictiveUseCase) GetItemAnalytics(
	ctx context.Context,
	stockItemID string,
	currentQuantity int,
	leadTimeDays int,
) (inventory.AnalyticsResult, error) {
	policy, err := uc.policyFor(leadTimeDays)
	if err != nil {
		return inventory.AnalyticsResult{}, err
	}
	history, err := uc.txRepo.ListByItem(ctx, stockItemID)
	if err != nil {
		return inventory.AnalyticsResult{}, fmt.Errorf("historial del ítem %s: %w", stockItemID, err)
	}
	return inventory.Analyze(entity.StockItem{ID: stockItemID, Quantity: currentQuantity}, history, policy)
}

// GetItemAnalyticsByID carga el ítem (cantidad, umbral y nombre) y lo analiza.
// Devuelve domain.ErrNotFound si el ítem no existe.
func (uc *PredictiveUseCase) GetItemAnalyticsByID(
	ctx context.Context,
	stockItemID string,
	leadTimeDays int,
) (inventory.AnalyticsResult, error) {
	policy, err := uc.policyFor(leadTimeDays)
	if err != nil {
		return inventory.AnalyticsResult{}, err
	}
	item, err := uc.itemRepo.GetByID(ctx, stockItemID)
	if err != nil {
		return inventory.AnalyticsResult{}, fmt.Errorf("obtener ítem %s: %w", stockItemID, err)
	}
	if item == nil {
		return inventory.AnalyticsResult{}, domain.ErrNotFound
	}
	history, err := uc.txRepo.ListByItem(ctx, stockItemID)
	if err != nil {
		return inventory.AnalyticsResult{}, fmt.Errorf("historial del ítem %s: %w", stockItemID, err)
	}
	return inventory.Analyze(*item, history, policy)
}

// GetDispensaryAnalytics analiza todos los ítems del dispensario y los devuelve ordenados por urgencia.
//
// Los historiales se leen en paralelo (máximo uc.workers a la vez). Cada goroutine escribe
// en su propio índice y el ordenamiento se hace al final, así el resultado es el mismo
// sin importar en qué orden terminen las lecturas. El primer error cancela el resto.
func (uc *PredictiveUseCase) GetDispensaryAnalytics(
	ctx context.Context,
	dispensaryID string,
	leadTimeDays int,
) ([]inventory.AnalyticsResult, error) {
	policy, err := uc.policyFor(leadTimeDays)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByDispensary(ctx, dispensaryID)
	if err != nil {
		return nil, fmt.Errorf("ítems del dispensario %s: %w", dispensaryID, err)
	}
	if len(items) == 0 {
		return []inventory.AnalyticsResult{}, nil
	}

	results := make([]inventory.AnalyticsResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			history, err := uc.txRepo.ListByItem(gctx, item.ID)
			if err != nil {
				return fmt.Errorf("historial del ítem %s: %w", item.ID, err)
			}
			res, err := inventory.Analyze(*item, history, policy)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.log.Error().Err(err).Str("dispensary_id", dispensaryID).Msg("analítica de dispensario fallida")
		return nil, err
	}

	ranked := inventory.RankByUrgency(results)
	uc.log.Debug().
		Str("dispensary_id", dispensaryID).
		Int("items", len(ranked)).
		Int("lead_time_days", policy.LeadTimeDays).
		Msg("analítica de dispensario calculada")
	return ranked, nil
}

// policyFor aplica el lead time de la petición sobre la política configurada.
func (uc *PredictiveUseCase) policyFor(leadTimeDays int) (inventory.Policy, error) {
	if leadTimeDays < 0 {
		return inventory.Policy{}, fmt.Errorf("%w: lead_time_days debe ser >= 0", domain.ErrInvalidInput)
	}
	policy := uc.policy.WithLeadTime(leadTimeDays)
	if err := policy.Validate(); err != nil {
		return inventory.Policy{}, err
	}
	return policy, nil
}
