package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación de StockTransactionRepository sobre PostgreSQL (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador de transacciones. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const stockTransactionSelect = `
	SELECT t.id, t.stock_item_id, t.dispensary_id, t.transaction_type, t.quantity,
	       t.previous_quantity, t.new_quantity, t.reason, t.notes, t.user_id, t.created_at,
	       u.name, s.name
	FROM stock_transactions t
	LEFT JOIN users u ON u.id = t.user_id
	LEFT JOIN stock_items s ON s.id = t.stock_item_id`

// Create inserta una transacción (append-only).
func (r *StockTransactionRepo) Create(ctx context.Context, tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, stock_item_id, dispensary_id, transaction_type, quantity,
			previous_quantity, new_quantity, reason, notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.StockItemID, tx.DispensaryID, tx.TransactionType, tx.Quantity,
		tx.PreviousQuantity, tx.NewQuantity, nullIfEmpty(tx.Reason), nullIfEmpty(tx.Notes),
		nullIfEmpty(tx.UserID), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListByItem historial del ítem, más reciente primero.
func (r *StockTransactionRepo) ListByItem(ctx context.Context, stockItemID string) ([]entity.StockTransaction, error) {
	return r.list(ctx, stockTransactionSelect+` WHERE t.stock_item_id = $1 ORDER BY t.created_at DESC`, stockItemID)
}

// ListByDispensary últimas limit transacciones del dispensario.
func (r *StockTransactionRepo) ListByDispensary(ctx context.Context, dispensaryID string, limit int) ([]entity.StockTransaction, error) {
	return r.list(ctx, stockTransactionSelect+` WHERE t.dispensary_id = $1 ORDER BY t.created_at DESC LIMIT $2`,
		dispensaryID, limit)
}

func (r *StockTransactionRepo) list(ctx context.Context, query string, args ...any) ([]entity.StockTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	list := make([]entity.StockTransaction, 0)
	for rows.Next() {
		t, err := scanStockTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanStockTransaction(row pgx.Row) (entity.StockTransaction, error) {
	var t entity.StockTransaction
	var reason, notes, userID, userName, itemName *string
	err := row.Scan(
		&t.ID, &t.StockItemID, &t.DispensaryID, &t.TransactionType, &t.Quantity,
		&t.PreviousQuantity, &t.NewQuantity, &reason, &notes, &userID, &t.CreatedAt,
		&userName, &itemName,
	)
	if err != nil {
		return t, err
	}
	t.Reason = deref(reason)
	t.Notes = deref(notes)
	t.UserID = deref(userID)
	t.UserName = deref(userName)
	t.ItemName = deref(itemName)
	return t, nil
}
