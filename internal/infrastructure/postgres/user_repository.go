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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, name, phone_number, role, status, created_at, updated_at, last_signed_in`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, nullIfEmpty(user.PhoneNumber), user.Role, user.Status,
		user.CreatedAt, user.UpdatedAt, user.LastSignedIn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List lista todos los usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateRole cambia el rol de un usuario.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	return r.execOne(ctx, "update user role", `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
}

// TouchLastSignedIn registra el último inicio de sesión.
func (r *UserRepo) TouchLastSignedIn(ctx context.Context, id string) error {
	return r.execOne(ctx, "touch last signed in", `UPDATE users SET last_signed_in = now() WHERE id = $1`, id)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListStockControllers usuarios que reciben alertas de stock, con sus preferencias (true si no hay fila).
func (r *UserRepo) ListStockControllers(ctx context.Context) ([]entity.StockController, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone_number,
		       COALESCE(p.email_notifications, true),
		       COALESCE(p.sms_notifications, true)
		FROM users u
		LEFT JOIN user_preferences p ON p.user_id = u.id
		WHERE u.role IN ('stock_controller', 'manager', 'founder') AND u.status = 'active'
		ORDER BY u.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock controllers: %w", err)
	}
	defer rows.Close()
	var list []entity.StockController
	for rows.Next() {
		var c entity.StockController
		var phone *string
		if err := rows.Scan(&c.UserID, &c.Name, &c.Email, &phone, &c.EmailEnabled, &c.SMSEnabled); err != nil {
			return nil, fmt.Errorf("scan stock controller: %w", err)
		}
		c.PhoneNumber = deref(phone)
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var phone *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &phone, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn,
	)
	if err != nil {
		return nil, err
	}
	u.PhoneNumber = deref(phone)
	return &u, nil
}
