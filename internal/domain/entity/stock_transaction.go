package entity

import "time"

// Tipos de transacción de stock.
const (
	TransactionTypeIssued     = "issued"     // dispensado a pacientes (consumo)
	TransactionTypeReceived   = "received"   // entrada
	TransactionTypeLost       = "lost"       // pérdida, vencido, dañado
	TransactionTypeAdjustment = "adjustment" // conteo físico (cantidad absoluta)
)

// StockTransaction representa un movimiento de stock. Es inmutable: solo se insertan filas.
type StockTransaction struct {
	ID               string
	StockItemID      string
	DispensaryID     string
	TransactionType  string
	Quantity         int // magnitud del movimiento, nunca negativa
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	Notes            string
	UserID           string
	CreatedAt        time.Time

	// Campos de solo lectura (join)
	UserName string
	ItemName string
}

// IsValidTransactionType indica si t es un tipo de transacción soportado.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIssued, TransactionTypeReceived, TransactionTypeLost, TransactionTypeAdjustment:
		return true
	}
	return false
}
