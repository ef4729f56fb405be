package alerts_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinic-stock-api/internal/application/alerts"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recordingNotifier struct {
	mu     sync.Mutex
	emails []string
	sms    []string
	owner  []string
}

func (n *recordingNotifier) SendEmail(_ context.Context, to, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, to+"|"+subject)
	return nil
}

func (n *recordingNotifier) SendSMS(_ context.Context, phone, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sms = append(n.sms, phone)
	return nil
}

func (n *recordingNotifier) NotifyOwner(_ context.Context, title, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.owner = append(n.owner, title)
	return nil
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *alerts.AlertUseCase
	items    *testutil.ItemRepo
	prefs    *testutil.PreferenceRepo
	notifier *recordingNotifier
	clock    *time.Time
}

func newFixture(items ...*entity.StockItem) *fixture {
	prefs := testutil.NewPreferenceRepo()
	users := testutil.NewUserRepo(
		&entity.User{ID: "sc", Email: "sc@clinic.test", PhoneNumber: "+27110000001", Role: entity.RoleStockController},
		&entity.User{ID: "mgr", Email: "mgr@clinic.test", Role: entity.RoleManager},
		&entity.User{ID: "nurse", Email: "nurse@clinic.test", PhoneNumber: "+27110000003", Role: entity.RoleUser},
	)
	users.Prefs = prefs
	itemRepo := testutil.NewItemRepo(items...)
	n := &recordingNotifier{}
	clock := now
	f := &fixture{items: itemRepo, prefs: prefs, notifier: n, clock: &clock}
	f.uc = alerts.NewAlertUseCase(itemRepo, users, testutil.NewAlertRepo(), n, alerts.DefaultConfig(), zerolog.Nop()).
		WithClock(func() time.Time { return *f.clock })
	return f
}

func dateIn(days int) *time.Time {
	d := now.AddDate(0, 0, days)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckLowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckLowStock_NotificaAStockControllers(t *testing.T) {
	f := newFixture(&entity.StockItem{ID: "a", Name: "Amoxicilina", Quantity: 10, LowStockThreshold: 10})

	sent, err := f.uc.CheckLowStock(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.ElementsMatch(t, []string{
		"sc@clinic.test|Alerta de stock bajo: Amoxicilina",
		"mgr@clinic.test|Alerta de stock bajo: Amoxicilina",
	}, f.notifier.emails, "el rol user no recibe alertas")
	assert.Equal(t, []string{"+27110000001"}, f.notifier.sms, "solo quien tiene teléfono")
	assert.Len(t, f.notifier.owner, 1)
}

func TestCheckLowStock_SobreUmbralNoNotifica(t *testing.T) {
	f := newFixture(&entity.StockItem{ID: "a", Name: "A", Quantity: 11, LowStockThreshold: 10})
	sent, err := f.uc.CheckLowStock(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, f.notifier.emails)
}

func TestCheckLowStock_RespetaPreferencias(t *testing.T) {
	f := newFixture(&entity.StockItem{ID: "a", Name: "A", Quantity: 2, LowStockThreshold: 10})
	require.NoError(t, f.prefs.Upsert(context.Background(), &entity.UserPreference{UserID: "sc", EmailNotifications: false, SMSNotifications: false}))

	_, err := f.uc.CheckLowStock(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"mgr@clinic.test|Alerta de stock bajo: A"}, f.notifier.emails)
	assert.Empty(t, f.notifier.sms)
}

func TestCheckLowStock_Cooldown(t *testing.T) {
	f := newFixture(&entity.StockItem{ID: "a", Name: "A", Quantity: 0, LowStockThreshold: 10})
	ctx := context.Background()

	sent, err := f.uc.CheckLowStock(ctx, "a")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Contains(t, f.notifier.owner[0], "Sin stock")

	*f.clock = now.Add(2 * time.Hour)
	sent, err = f.uc.CheckLowStock(ctx, "a")
	require.NoError(t, err)
	assert.False(t, sent, "dentro del cooldown no se repite")

	*f.clock = now.Add(25 * time.Hour)
	sent, err = f.uc.CheckLowStock(ctx, "a")
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestCheckLowStock_ItemInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CheckLowStock(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckExpiring
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckExpiring(t *testing.T) {
	f := newFixture(
		&entity.StockItem{ID: "soon", Name: "Soon", Quantity: 50, LowStockThreshold: 1, ExpirationDate: dateIn(30)},
		&entity.StockItem{ID: "late", Name: "Late", Quantity: 50, LowStockThreshold: 1, ExpirationDate: dateIn(200)},
		&entity.StockItem{ID: "gone", Name: "Gone", Quantity: 50, LowStockThreshold: 1, ExpirationDate: dateIn(-1)},
		&entity.StockItem{ID: "none", Name: "None", Quantity: 50, LowStockThreshold: 1},
	)
	ctx := context.Background()

	sent, err := f.uc.CheckExpiring(ctx, "soon")
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = f.uc.CheckExpiring(ctx, "late")
	require.NoError(t, err)
	assert.False(t, sent)

	sent, err = f.uc.CheckExpiring(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = f.uc.CheckExpiring(ctx, "none")
	require.NoError(t, err)
	assert.False(t, sent)

	assert.Equal(t, []string{"Próximo a vencer: Soon", "Ítem vencido: Gone"}, f.notifier.owner)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatch
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatch_EjecutaEnSegundoPlano(t *testing.T) {
	f := newFixture(&entity.StockItem{ID: "a", Name: "A", Quantity: 1, LowStockThreshold: 10, ExpirationDate: dateIn(10)})
	f.uc.Dispatch("a")
	f.uc.Dispatch("no-existe") // el error solo se registra
	f.uc.Wait()

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	assert.Len(t, f.notifier.owner, 2, "stock bajo + próximo a vencer")
}
