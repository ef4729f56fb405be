package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
)

// ToDTO convierte un resultado al formato de la API (consumo redondeado a 2 decimales).
func ToDTO(r inventory.AnalyticsResult) dto.AnalyticsResultDTO {
	return dto.AnalyticsResultDTO{
		StockItemID:         r.StockItemID,
		Name:                r.Name,
		CurrentQuantity:     r.CurrentQuantity,
		LowStockThreshold:   r.LowStockThreshold,
		AvgDailyConsumption: decimal.NewFromFloat(r.AvgDailyConsumption).Round(2),
		DaysUntilDepletion:  r.DaysUntilDepletion,
		SafetyStock:         r.SafetyStock,
		ReorderPoint:        r.ReorderPoint,
		RecommendedQuantity: r.RecommendedQuantity,
		NeedsReorder:        r.NeedsReorder,
	}
}

// ToRankedResponse arma la respuesta de dispensario. ranked ya viene ordenado por urgencia;
// Priority es la posición (1 = más urgente).
func ToRankedResponse(dispensaryID string, leadTimeDays int, ranked []inventory.AnalyticsResult) dto.DispensaryAnalyticsResponse {
	out := dto.DispensaryAnalyticsResponse{
		DispensaryID: dispensaryID,
		LeadTimeDays: leadTimeDays,
		Items:        make([]dto.AnalyticsResultDTO, 0, len(ranked)),
	}
	for i, r := range ranked {
		d := ToDTO(r)
		d.Priority = i + 1
		if r.NeedsReorder {
			out.NeedsReorderCount++
		}
		out.Items = append(out.Items, d)
	}
	return out
}
