package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se indica uno.
const DefaultLowStockThreshold = 10

// StockItem representa un medicamento o insumo en el inventario de un dispensario.
// Quantity solo cambia vía transacciones (ver StockTransaction).
type StockItem struct {
	ID                string
	DispensaryID      string
	CategoryID        string // vacío si no tiene categoría
	CategoryName      string // solo lectura (join)
	Name              string
	Quantity          int
	UnitPrice         *decimal.Decimal
	BatchNumber       string
	ExpirationDate    *time.Time
	Source            string
	LowStockThreshold int
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
}

// IsLowStock indica si el stock está en o por debajo del umbral.
func (s *StockItem) IsLowStock() bool {
	return s.Quantity <= s.LowStockThreshold
}

// IsOutOfStock indica si el ítem está agotado.
func (s *StockItem) IsOutOfStock() bool {
	return s.Quantity == 0
}
