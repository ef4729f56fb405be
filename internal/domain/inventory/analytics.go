package inventory

import (
	"fmt"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// AnalyticsResult analítica predictiva de un ítem. Se calcula en cada consulta; no se persiste.
type AnalyticsResult struct {
	StockItemID         string
	Name                string
	CurrentQuantity     int
	LowStockThreshold   int     // solo para mostrar; no interviene en la política de reorden
	AvgDailyConsumption float64 // precisión completa; redondear solo al presentar
	DaysUntilDepletion  Days
	SafetyStock         int
	ReorderPoint        int
	RecommendedQuantity int
	NeedsReorder        bool
}

// Analyze calcula consumo, agotamiento y plan de reorden de un ítem a partir de su historial.
// Es una función pura: no guarda estado entre llamadas.
func Analyze(item entity.StockItem, history []entity.StockTransaction, policy Policy) (AnalyticsResult, error) {
	if item.Quantity < 0 {
		return AnalyticsResult{}, fmt.Errorf("%w: ítem %s con cantidad negativa (%d)",
			domain.ErrDataIntegrity, item.ID, item.Quantity)
	}
	rate, err := AverageDailyConsumption(history)
	if err != nil {
		return AnalyticsResult{}, err
	}
	plan := policy.Reorder(rate)
	return AnalyticsResult{
		StockItemID:         item.ID,
		Name:                item.Name,
		CurrentQuantity:     item.Quantity,
		LowStockThreshold:   item.LowStockThreshold,
		AvgDailyConsumption: rate,
		DaysUntilDepletion:  PredictDepletion(item.Quantity, rate),
		SafetyStock:         plan.SafetyStock,
		ReorderPoint:        plan.ReorderPoint,
		RecommendedQuantity: plan.RecommendedQuantity,
		NeedsReorder:        item.Quantity <= plan.ReorderPoint,
	}, nil
}
