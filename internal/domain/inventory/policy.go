package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
)

// Parámetros por defecto de la política de reorden.
const (
	DefaultLeadTimeDays = 7   // días entre el pedido y la recepción
	DefaultSafetyFactor = 0.5 // fracción del consumo en lead time que se guarda como colchón
	DefaultSupplyDays   = 30  // días de consumo que cubre un pedido recomendado
)

// Policy parámetros de la política de reorden (punto de reorden + stock de seguridad).
type Policy struct {
	LeadTimeDays int
	SafetyFactor float64
	SupplyDays   int
}

// DefaultPolicy devuelve la política con los valores por defecto (7 días, 0.5, 30 días).
func DefaultPolicy() Policy {
	return Policy{
		LeadTimeDays: DefaultLeadTimeDays,
		SafetyFactor: DefaultSafetyFactor,
		SupplyDays:   DefaultSupplyDays,
	}
}

// WithLeadTime devuelve una copia de la política con otro lead time.
// days <= 0 conserva el lead time actual.
func (p Policy) WithLeadTime(days int) Policy {
	if days > 0 {
		p.LeadTimeDays = days
	}
	return p
}

// Validate rechaza parámetros negativos.
func (p Policy) Validate() error {
	if p.LeadTimeDays < 0 || p.SafetyFactor < 0 || p.SupplyDays < 0 {
		return fmt.Errorf("%w: política de reorden con valores negativos (lead=%d, factor=%.2f, supply=%d)",
			domain.ErrInvalidInput, p.LeadTimeDays, p.SafetyFactor, p.SupplyDays)
	}
	return nil
}

// ReorderPlan stock de seguridad, punto de reorden y cantidad sugerida de pedido.
type ReorderPlan struct {
	SafetyStock         int
	ReorderPoint        int
	RecommendedQuantity int
}

// Reorder calcula el plan de reorden a partir del consumo diario promedio.
//
//	SafetyStock         = ceil(consumo * leadTime * factor)
//	ReorderPoint        = ceil(consumo * leadTime) + SafetyStock
//	RecommendedQuantity = ceil(consumo * supplyDays)
//
// Siempre se redondea hacia arriba: pedir de menos es el error más caro.
func (p Policy) Reorder(avgDailyConsumption float64) ReorderPlan {
	if avgDailyConsumption <= 0 {
		return ReorderPlan{}
	}
	leadDemand := avgDailyConsumption * float64(p.LeadTimeDays)
	safety := ceilInt(leadDemand * p.SafetyFactor)
	return ReorderPlan{
		SafetyStock:         safety,
		ReorderPoint:        ceilInt(leadDemand) + safety,
		RecommendedQuantity: ceilInt(avgDailyConsumption * float64(p.SupplyDays)),
	}
}

func ceilInt(v float64) int {
	return int(math.Ceil(math.Max(0, v)))
}
