// Package testutil repositorios en memoria para los tests de los casos de uso.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

var (
	_ repository.StockItemRepository        = (*ItemRepo)(nil)
	_ repository.StockTransactionRepository = (*TxRepo)(nil)
	_ repository.CategoryRepository         = (*CategoryRepo)(nil)
	_ repository.DispensaryRepository       = (*DispensaryRepo)(nil)
	_ repository.UserRepository             = (*UserRepo)(nil)
	_ repository.UserPreferenceRepository   = (*PreferenceRepo)(nil)
	_ repository.StockAlertRepository       = (*AlertRepo)(nil)
)

// ── Stock items ──────────────────────────────────────────────────────────────

// ItemRepo StockItemRepository en memoria. Err, si no es nil, se devuelve en todas las lecturas.
type ItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.StockItem
	order []string
	Err   error
}

// NewItemRepo crea el repo con los ítems dados (en ese orden).
func NewItemRepo(items ...*entity.StockItem) *ItemRepo {
	r := &ItemRepo{items: map[string]*entity.StockItem{}}
	for _, it := range items {
		_ = r.Create(context.Background(), it)
	}
	return r
}

func (r *ItemRepo) Create(_ context.Context, item *entity.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, item *entity.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	cp.Quantity = cur.Quantity
	r.items[item.ID] = &cp
	return nil
}

func (r *ItemRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = time.Now()
	return nil
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ItemRepo) filter(keep func(*entity.StockItem) bool) ([]*entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.StockItem
	for _, id := range r.order {
		if it := r.items[id]; keep(it) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ItemRepo) ListByDispensary(_ context.Context, dispensaryID string) ([]*entity.StockItem, error) {
	return r.filter(func(it *entity.StockItem) bool { return it.DispensaryID == dispensaryID })
}

func (r *ItemRepo) ListByCategory(_ context.Context, dispensaryID, categoryID string) ([]*entity.StockItem, error) {
	return r.filter(func(it *entity.StockItem) bool {
		return it.DispensaryID == dispensaryID && it.CategoryID == categoryID
	})
}

func (r *ItemRepo) ListLowStock(_ context.Context, dispensaryID string) ([]*entity.StockItem, error) {
	out, err := r.filter(func(it *entity.StockItem) bool {
		return it.DispensaryID == dispensaryID && it.IsLowStock()
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, err
}

func (r *ItemRepo) ListExpiringBefore(_ context.Context, dispensaryID string, before time.Time) ([]*entity.StockItem, error) {
	out, err := r.filter(func(it *entity.StockItem) bool {
		return it.DispensaryID == dispensaryID && it.ExpirationDate != nil && !it.ExpirationDate.After(before)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpirationDate.Before(*out[j].ExpirationDate) })
	return out, err
}

// ── Transactions ─────────────────────────────────────────────────────────────

// TxRepo StockTransactionRepository en memoria. FailFor fuerza un error al leer el historial de un ítem.
type TxRepo struct {
	mu      sync.Mutex
	txs     []entity.StockTransaction
	FailFor map[string]error
	Delay   time.Duration
}

// NewTxRepo crea el repo con el historial dado.
func NewTxRepo(txs ...entity.StockTransaction) *TxRepo {
	return &TxRepo{txs: append([]entity.StockTransaction(nil), txs...), FailFor: map[string]error{}}
}

func (r *TxRepo) Create(_ context.Context, tx *entity.StockTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *TxRepo) ListByItem(ctx context.Context, stockItemID string) ([]entity.StockTransaction, error) {
	if r.Delay > 0 {
		select {
		case <-time.After(r.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailFor[stockItemID]; err != nil {
		return nil, err
	}
	var out []entity.StockTransaction
	for _, tx := range r.txs {
		if tx.StockItemID == stockItemID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *TxRepo) ListByDispensary(_ context.Context, dispensaryID string, limit int) ([]entity.StockTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.StockTransaction
	for i := len(r.txs) - 1; i >= 0; i-- {
		if r.txs[i].DispensaryID == dispensaryID {
			out = append(out, r.txs[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// All devuelve una copia de todas las transacciones registradas.
func (r *TxRepo) All() []entity.StockTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.StockTransaction(nil), r.txs...)
}

// ── Categories / dispensaries ────────────────────────────────────────────────

// CategoryRepo CategoryRepository en memoria.
type CategoryRepo struct {
	mu   sync.Mutex
	cats []*entity.Category
}

func NewCategoryRepo(cats ...*entity.Category) *CategoryRepo {
	return &CategoryRepo{cats: cats}
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.cats {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.cats = append(r.cats, c)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*entity.Category(nil), r.cats...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// DispensaryRepo DispensaryRepository en memoria.
type DispensaryRepo struct {
	mu   sync.Mutex
	list []*entity.Dispensary
}

func NewDispensaryRepo(ds ...*entity.Dispensary) *DispensaryRepo {
	return &DispensaryRepo{list: ds}
}

func (r *DispensaryRepo) Create(_ context.Context, d *entity.Dispensary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, d)
	return nil
}

func (r *DispensaryRepo) GetByID(_ context.Context, id string) (*entity.Dispensary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.list {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *DispensaryRepo) ListActive(_ context.Context) ([]*entity.Dispensary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Dispensary
	for _, d := range r.list {
		if d.IsActive {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Users / preferences / alerts ─────────────────────────────────────────────

// UserRepo UserRepository en memoria. Prefs se usa para armar ListStockControllers.
type UserRepo struct {
	mu    sync.Mutex
	users []*entity.User
	Prefs *PreferenceRepo
}

func NewUserRepo(users ...*entity.User) *UserRepo {
	return &UserRepo{users: users}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *UserRepo) find(pred func(*entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if pred(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.User(nil), r.users...), nil
}

func (r *UserRepo) mutate(id string, fn func(*entity.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			fn(u)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string) error {
	return r.mutate(id, func(u *entity.User) { u.Role = role })
}

func (r *UserRepo) TouchLastSignedIn(_ context.Context, id string) error {
	now := time.Now()
	return r.mutate(id, func(u *entity.User) { u.LastSignedIn = &now })
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *UserRepo) ListStockControllers(ctx context.Context) ([]entity.StockController, error) {
	users, _ := r.List(ctx)
	var out []entity.StockController
	for _, u := range users {
		switch u.Role {
		case entity.RoleStockController, entity.RoleManager, entity.RoleFounder:
		default:
			continue
		}
		sc := entity.StockController{
			UserID: u.ID, Name: u.Name, Email: u.Email, PhoneNumber: u.PhoneNumber,
			EmailEnabled: true, SMSEnabled: true,
		}
		if r.Prefs != nil {
			if p, _ := r.Prefs.Get(ctx, u.ID); p != nil {
				sc.EmailEnabled = p.EmailNotifications
				sc.SMSEnabled = p.SMSNotifications
			}
		}
		out = append(out, sc)
	}
	return out, nil
}

// PreferenceRepo UserPreferenceRepository en memoria.
type PreferenceRepo struct {
	mu    sync.Mutex
	prefs map[string]entity.UserPreference
}

func NewPreferenceRepo() *PreferenceRepo {
	return &PreferenceRepo{prefs: map[string]entity.UserPreference{}}
}

func (r *PreferenceRepo) Get(_ context.Context, userID string) (*entity.UserPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PreferenceRepo) Upsert(_ context.Context, pref *entity.UserPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[pref.UserID] = *pref
	return nil
}

// AlertRepo StockAlertRepository en memoria.
type AlertRepo struct {
	mu     sync.Mutex
	alerts map[string]entity.StockAlert
}

func NewAlertRepo() *AlertRepo {
	return &AlertRepo{alerts: map[string]entity.StockAlert{}}
}

func alertKey(itemID, alertType string) string { return itemID + "|" + alertType }

func (r *AlertRepo) GetActive(_ context.Context, stockItemID, alertType string) (*entity.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[alertKey(stockItemID, alertType)]
	if !ok || !a.IsActive {
		return nil, nil
	}
	return &a, nil
}

func (r *AlertRepo) MarkSent(_ context.Context, stockItemID, alertType string, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := sentAt
	r.alerts[alertKey(stockItemID, alertType)] = entity.StockAlert{
		StockItemID: stockItemID, AlertType: alertType, IsActive: true, LastSentAt: &t, CreatedAt: sentAt,
	}
	return nil
}

func (r *AlertRepo) Resolve(_ context.Context, stockItemID string, alertTypes ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range alertTypes {
		k := alertKey(stockItemID, t)
		if a, ok := r.alerts[k]; ok {
			a.IsActive = false
			r.alerts[k] = a
		}
	}
	return nil
}

// ── Transacciones de BD ──────────────────────────────────────────────────────

// TxRunner ejecuta fn directamente sobre los repos en memoria (sin rollback).
type TxRunner struct {
	Items *ItemRepo
	Txs   *TxRepo
}

// Run implementa inventory.TxRunner.
func (r TxRunner) Run(_ context.Context, fn func(repository.StockItemRepository, repository.StockTransactionRepository) error) error {
	return fn(r.Items, r.Txs)
}

// NopDispatcher descarta los avisos de alertas.
type NopDispatcher struct{}

// Dispatch implementa inventory.AlertDispatcher.
func (NopDispatcher) Dispatch(string) {}
