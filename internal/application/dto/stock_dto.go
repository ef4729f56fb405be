package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/stock.
type CreateStockItemRequest struct {
	DispensaryID      string           `json:"dispensary_id"`
	CategoryID        string           `json:"category_id"`
	Name              string           `json:"name"`
	Quantity          int              `json:"quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	BatchNumber       string           `json:"batch_number,omitempty"`
	ExpirationDate    *time.Time       `json:"expiration_date,omitempty"`
	Source            string           `json:"source,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"` // 10 si se omite
	Notes             string           `json:"notes,omitempty"`
}

// UpdateStockItemRequest body para PUT /api/stock/:id. La cantidad no se edita aquí:
// se modifica con POST /api/stock/adjust para que quede registrada la transacción.
type UpdateStockItemRequest struct {
	CategoryID        *string          `json:"category_id,omitempty"`
	Name              *string          `json:"name,omitempty"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	BatchNumber       *string          `json:"batch_number,omitempty"`
	ExpirationDate    *time.Time       `json:"expiration_date,omitempty"`
	Source            *string          `json:"source,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

// StockItemResponse salida de un ítem de stock.
type StockItemResponse struct {
	ID                string           `json:"id"`
	DispensaryID      string           `json:"dispensary_id"`
	CategoryID        string           `json:"category_id"`
	CategoryName      string           `json:"category_name,omitempty"`
	Name              string           `json:"name"`
	Quantity          int              `json:"quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	BatchNumber       string           `json:"batch_number,omitempty"`
	ExpirationDate    *time.Time       `json:"expiration_date,omitempty"`
	Source            string           `json:"source,omitempty"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	Notes             string           `json:"notes,omitempty"`
	IsLowStock        bool             `json:"is_low_stock"`
	CreatedBy         string           `json:"created_by,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// AdjustQuantityRequest body para POST /api/stock/adjust.
//
//	received:   nueva = anterior + quantity
//	issued:     nueva = max(0, anterior - quantity)
//	lost:       nueva = max(0, anterior - quantity)
//	adjustment: nueva = quantity (conteo físico)
type AdjustQuantityRequest struct {
	StockItemID     string `json:"stock_item_id"`
	TransactionType string `json:"transaction_type"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// AdjustQuantityResponse resultado del ajuste: ítem actualizado y transacción registrada.
type AdjustQuantityResponse struct {
	Item        StockItemResponse        `json:"item"`
	Transaction StockTransactionResponse `json:"transaction"`
}

// StockTransactionResponse salida de una transacción de stock.
type StockTransactionResponse struct {
	ID               string    `json:"id"`
	StockItemID      string    `json:"stock_item_id"`
	DispensaryID     string    `json:"dispensary_id"`
	TransactionType  string    `json:"transaction_type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name,omitempty"`
	ItemName         string    `json:"item_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
