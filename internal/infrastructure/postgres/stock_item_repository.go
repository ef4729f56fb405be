package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de ítems de stock. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemSelect = `
	SELECT s.id, s.dispensary_id, s.category_id, c.name, s.name, s.quantity, s.unit_price,
	       s.batch_number, s.expiration_date, s.source, s.low_stock_threshold, s.notes,
	       s.created_at, s.updated_at, s.created_by
	FROM stock_items s
	LEFT JOIN categories c ON c.id = s.category_id`

// Create persiste un nuevo ítem.
func (r *StockItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, dispensary_id, category_id, name, quantity, unit_price, batch_number,
			expiration_date, source, low_stock_threshold, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.DispensaryID, nullIfEmpty(it.CategoryID), it.Name, it.Quantity, it.UnitPrice,
		nullIfEmpty(it.BatchNumber), it.ExpirationDate, nullIfEmpty(it.Source), it.LowStockThreshold,
		nullIfEmpty(it.Notes), it.CreatedAt, it.UpdatedAt, nullIfEmpty(it.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID con el nombre de su categoría.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, stockItemSelect+` WHERE s.id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea su fila hasta el fin de la transacción.
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, stockItemSelect+` WHERE s.id = $1 FOR UPDATE OF s`, id)
}

func (r *StockItemRepo) getOne(ctx context.Context, query, id string) (*entity.StockItem, error) {
	it, err := scanStockItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return it, nil
}

// Update modifica los campos descriptivos del ítem (no la cantidad).
func (r *StockItemRepo) Update(ctx context.Context, it *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET category_id = $2, name = $3, unit_price = $4, batch_number = $5, expiration_date = $6,
		    source = $7, low_stock_threshold = $8, notes = $9, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		it.ID, nullIfEmpty(it.CategoryID), it.Name, it.UnitPrice, nullIfEmpty(it.BatchNumber),
		it.ExpirationDate, nullIfEmpty(it.Source), it.LowStockThreshold, nullIfEmpty(it.Notes),
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad del ítem.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_items SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el ítem; sus transacciones y alertas se borran en cascada.
func (r *StockItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByDispensary lista los ítems del dispensario ordenados por nombre.
func (r *StockItemRepo) ListByDispensary(ctx context.Context, dispensaryID string) ([]*entity.StockItem, error) {
	return r.list(ctx, stockItemSelect+` WHERE s.dispensary_id = $1 ORDER BY s.name`, dispensaryID)
}

// ListByCategory lista los ítems del dispensario de una categoría.
func (r *StockItemRepo) ListByCategory(ctx context.Context, dispensaryID, categoryID string) ([]*entity.StockItem, error) {
	return r.list(ctx, stockItemSelect+` WHERE s.dispensary_id = $1 AND s.category_id = $2 ORDER BY s.name`,
		dispensaryID, categoryID)
}

// ListLowStock ítems en o bajo su umbral, de menor a mayor cantidad.
func (r *StockItemRepo) ListLowStock(ctx context.Context, dispensaryID string) ([]*entity.StockItem, error) {
	return r.list(ctx, stockItemSelect+`
		WHERE s.dispensary_id = $1 AND s.quantity <= s.low_stock_threshold
		ORDER BY s.quantity, s.name`, dispensaryID)
}

// ListExpiringBefore ítems con vencimiento hasta before (incluye vencidos), del más próximo al más lejano.
func (r *StockItemRepo) ListExpiringBefore(ctx context.Context, dispensaryID string, before time.Time) ([]*entity.StockItem, error) {
	return r.list(ctx, stockItemSelect+`
		WHERE s.dispensary_id = $1 AND s.expiration_date IS NOT NULL AND s.expiration_date <= $2
		ORDER BY s.expiration_date, s.name`, dispensaryID, before)
}

func (r *StockItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	var categoryID, categoryName, batch, source, notes, createdBy *string
	err := row.Scan(
		&it.ID, &it.DispensaryID, &categoryID, &categoryName, &it.Name, &it.Quantity, &it.UnitPrice,
		&batch, &it.ExpirationDate, &source, &it.LowStockThreshold, &notes,
		&it.CreatedAt, &it.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	it.CategoryID = deref(categoryID)
	it.CategoryName = deref(categoryName)
	it.BatchNumber = deref(batch)
	it.Source = deref(source)
	it.Notes = deref(notes)
	it.CreatedBy = deref(createdBy)
	return &it, nil
}
