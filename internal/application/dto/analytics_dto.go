package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
)

// AnalyticsResultDTO analítica predictiva de un ítem para la API.
// DaysUntilDepletion se serializa como null cuando no hay consumo registrado.
type AnalyticsResultDTO struct {
	StockItemID         string          `json:"stock_item_id"`
	Name                string          `json:"name,omitempty"`
	CurrentQuantity     int             `json:"current_quantity"`
	LowStockThreshold   int             `json:"low_stock_threshold"`
	AvgDailyConsumption decimal.Decimal `json:"avg_daily_consumption"` // redondeado a 2 decimales
	DaysUntilDepletion  inventory.Days  `json:"days_until_depletion"`
	SafetyStock         int             `json:"safety_stock"`
	ReorderPoint        int             `json:"reorder_point"`
	RecommendedQuantity int             `json:"recommended_quantity"`
	NeedsReorder        bool            `json:"needs_reorder"`
	Priority            int             `json:"priority,omitempty"` // 1 = más urgente (solo en listados)
}

// DispensaryAnalyticsResponse analítica de todos los ítems de un dispensario, ordenada por urgencia.
type DispensaryAnalyticsResponse struct {
	DispensaryID      string               `json:"dispensary_id"`
	LeadTimeDays      int                  `json:"lead_time_days"`
	NeedsReorderCount int                  `json:"needs_reorder_count"`
	Items             []AnalyticsResultDTO `json:"items"`
}
