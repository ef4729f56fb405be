package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

var _ repository.DispensaryRepository = (*DispensaryRepo)(nil)

// DispensaryRepo implementación del puerto DispensaryRepository sobre PostgreSQL.
type DispensaryRepo struct {
	q Querier
}

// NewDispensaryRepository construye el adaptador de persistencia para dispensarios.
func NewDispensaryRepository(q Querier) *DispensaryRepo {
	return &DispensaryRepo{q: q}
}

const dispensaryColumns = `id, name, type, description, is_active, created_at, updated_at`

// Create persiste un nuevo dispensario.
func (r *DispensaryRepo) Create(ctx context.Context, d *entity.Dispensary) error {
	query := `
		INSERT INTO dispensaries (` + dispensaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Name, d.Type, nullIfEmpty(d.Description), d.IsActive, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert dispensary: %w", err)
	}
	return nil
}

// GetByID obtiene un dispensario por ID.
func (r *DispensaryRepo) GetByID(ctx context.Context, id string) (*entity.Dispensary, error) {
	query := `SELECT ` + dispensaryColumns + ` FROM dispensaries WHERE id = $1`
	d, err := scanDispensary(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispensary: %w", err)
	}
	return d, nil
}

// ListActive lista los dispensarios activos ordenados por nombre.
func (r *DispensaryRepo) ListActive(ctx context.Context) ([]*entity.Dispensary, error) {
	query := `SELECT ` + dispensaryColumns + ` FROM dispensaries WHERE is_active ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dispensaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dispensary
	for rows.Next() {
		d, err := scanDispensary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispensary: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDispensary(row pgx.Row) (*entity.Dispensary, error) {
	var d entity.Dispensary
	var description *string
	if err := row.Scan(&d.ID, &d.Name, &d.Type, &description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Description = deref(description)
	return &d, nil
}
