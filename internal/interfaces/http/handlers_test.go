package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinic-stock-api/internal/application/analytics"
	"github.com/jhoicas/clinic-stock-api/internal/application/auth"
	"github.com/jhoicas/clinic-stock-api/internal/application/catalog"
	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/application/export"
	"github.com/jhoicas/clinic-stock-api/internal/application/inventory"
	"github.com/jhoicas/clinic-stock-api/internal/application/usecase"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
	apphttp "github.com/jhoicas/clinic-stock-api/internal/interfaces/http"
	"github.com/jhoicas/clinic-stock-api/internal/testutil"
	pkgjwt "github.com/jhoicas/clinic-stock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: API completa sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	dispensaryID = "disp-1"
	categoryID   = "cat-1"
	itemUrgente  = "item-urgente"
	itemHolgado  = "item-holgado"
	ownerEmail   = "owner@clinica.test"
)

type stubPDF struct{}

func (stubPDF) RenderTable(_ context.Context, t export.Table) ([]byte, error) {
	return []byte("%PDF-1.4 " + t.Title), nil
}

type stubLLM struct{ answer string }

func (s stubLLM) SuggestMedicationCategory(context.Context, string, []string) (string, error) {
	return s.answer, nil
}

type apiFixture struct {
	app   *fiber.App
	items *testutil.ItemRepo
	txs   *testutil.TxRepo
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	now := time.Now().UTC()

	dispensaries := testutil.NewDispensaryRepo(&entity.Dispensary{
		ID: dispensaryID, Name: "Clínica Central", Type: entity.DispensaryTypeMainClinic, IsActive: true, CreatedAt: now,
	})
	categories := testutil.NewCategoryRepo(&entity.Category{ID: categoryID, Name: "Antibióticos", SortOrder: 1, CreatedAt: now})
	items := testutil.NewItemRepo(
		&entity.StockItem{ID: itemHolgado, DispensaryID: dispensaryID, CategoryID: categoryID, Name: "Gasas", Quantity: 100, LowStockThreshold: 10},
		&entity.StockItem{ID: itemUrgente, DispensaryID: dispensaryID, CategoryID: categoryID, Name: "Amoxicilina", Quantity: 4, LowStockThreshold: 10},
	)
	// 20 unidades dispensadas en 10 días: 2 por día.
	txs := testutil.NewTxRepo(
		entity.StockTransaction{ID: "tx-1", StockItemID: itemUrgente, DispensaryID: dispensaryID, TransactionType: entity.TransactionTypeIssued, Quantity: 10, CreatedAt: now.AddDate(0, 0, -10)},
		entity.StockTransaction{ID: "tx-2", StockItemID: itemUrgente, DispensaryID: dispensaryID, TransactionType: entity.TransactionTypeIssued, Quantity: 10, CreatedAt: now},
	)
	runner := testutil.TxRunner{Items: items, Txs: txs}
	dispatcher := testutil.NopDispatcher{}

	predictive := analytics.NewPredictiveUseCase(items, txs, domaininv.DefaultPolicy(), 2, zerolog.Nop())
	deps := apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(testutil.NewUserRepo(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, ownerEmail),
		DispensaryUC:  usecase.NewDispensaryUseCase(dispensaries),
		CategoryUC:    catalog.NewCategoryUseCase(categories, stubLLM{answer: "antibióticos"}),
		StockUC:       inventory.NewStockUseCase(runner, items, dispensaries, categories, dispatcher, 3),
		AdjustUC:      inventory.NewAdjustQuantityUseCase(runner, dispatcher),
		TransactionUC: inventory.NewTransactionUseCase(txs),
		UserUC:        usecase.NewUserUseCase(testutil.NewUserRepo()),
		PreferenceUC:  usecase.NewPreferenceUseCase(testutil.NewPreferenceRepo(), dispensaries),
		AnalyticsUC:   predictive,
		ExportUC:      export.NewExportUseCase(items, txs, dispensaries, predictive, stubPDF{}, 3),
		JWTSecret:     testJWTSecret,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &apiFixture{app: app, items: items, txs: txs}
}

func (f *apiFixture) call(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroLoginYMe(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "Owner@Clinica.test", Password: "supersecreta"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)
	assert.Equal(t, entity.RoleAdmin, created.Role, "el email del dueño queda como admin")

	resp = f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: ownerEmail, Password: "supersecreta"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	resp = f.call(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, created.ID, me.ID)
	assert.Equal(t, ownerEmail, me.Email)
}

func TestAuth_RegistroDuplicado_Retorna409(t *testing.T) {
	f := newAPI(t)
	body := dto.RegisterRequest{Email: "enfermera@clinica.test", Password: "supersecreta"}

	resp := f.call(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.RoleUser, decode[dto.UserResponse](t, resp).Role)

	resp = f.call(t, http.MethodPost, "/api/auth/register", "", body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuth_LoginInvalido_Retorna401(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "a@clinica.test", Password: "supersecreta"})
	resp.Body.Close()

	resp = f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "a@clinica.test", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, decodeStatus(resp))

	resp = f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@clinica.test", Password: "supersecreta"})
	assert.Equal(t, http.StatusUnauthorized, decodeStatus(resp))
}

func decodeStatus(resp *http.Response) int {
	resp.Body.Close()
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispensarios y categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestDispensarios_ListadoPublicoYAltaSoloAdmin(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, http.MethodGet, "/api/dispensaries", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.DispensaryResponse](t, resp), 1)

	body := dto.CreateDispensaryRequest{Name: "Unidad móvil", Type: entity.DispensaryTypePODMobile}
	resp = f.call(t, http.MethodPost, "/api/dispensaries", bearer(t, "u-1", entity.RoleUser), body)
	assert.Equal(t, http.StatusForbidden, decodeStatus(resp))

	resp = f.call(t, http.MethodPost, "/api/dispensaries", bearer(t, "u-2", entity.RoleAdmin), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	d := decode[dto.DispensaryResponse](t, resp)
	assert.Equal(t, "Unidad móvil", d.Name)
	assert.True(t, d.IsActive)

	resp = f.call(t, http.MethodGet, "/api/dispensaries/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, decodeStatus(resp))
}

func TestCategorias_ClasificacionCoincideConExistente(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, http.MethodPost, "/api/categories/classify", bearer(t, "u-1", entity.RoleUser), dto.ClassifyMedicationRequest{Name: "Amoxicilina 500mg"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ClassifyMedicationResponse](t, resp)
	require.NotNil(t, out.CategoryID)
	assert.Equal(t, categoryID, *out.CategoryID)

	resp = f.call(t, http.MethodPost, "/api/categories/classify", "", dto.ClassifyMedicationRequest{Name: "Amoxicilina"})
	assert.Equal(t, http.StatusUnauthorized, decodeStatus(resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock y transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_AltaYAjusteRegistranTransacciones(t *testing.T) {
	f := newAPI(t)
	token := bearer(t, "ctrl-1", entity.RoleStockController)

	resp := f.call(t, http.MethodPost, "/api/stock", token, dto.CreateStockItemRequest{
		DispensaryID: dispensaryID, CategoryID: categoryID, Name: "Ibuprofeno", Quantity: 50,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[dto.StockItemResponse](t, resp)
	assert.Equal(t, 50, item.Quantity)
	assert.Equal(t, 10, item.LowStockThreshold)
	assert.Equal(t, "Antibióticos", item.CategoryName)

	resp = f.call(t, http.MethodPost, "/api/stock/adjust", token, dto.AdjustQuantityRequest{
		StockItemID: item.ID, TransactionType: entity.TransactionTypeIssued, Quantity: 20,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adjusted := decode[dto.AdjustQuantityResponse](t, resp)
	assert.Equal(t, 30, adjusted.Item.Quantity)
	assert.Equal(t, 50, adjusted.Transaction.PreviousQuantity)
	assert.Equal(t, 30, adjusted.Transaction.NewQuantity)

	resp = f.call(t, http.MethodGet, "/api/transactions/item/"+item.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decode[[]dto.StockTransactionResponse](t, resp)
	require.Len(t, history, 2)
	types := []string{history[0].TransactionType, history[1].TransactionType}
	assert.ElementsMatch(t, []string{entity.TransactionTypeReceived, entity.TransactionTypeIssued}, types)
}

func TestStock_RolUsuarioNoPuedeCrear(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodPost, "/api/stock", bearer(t, "u-1", entity.RoleUser), dto.CreateStockItemRequest{
		DispensaryID: dispensaryID, CategoryID: categoryID, Name: "Ibuprofeno", Quantity: 5,
	})
	assert.Equal(t, http.StatusForbidden, decodeStatus(resp))
}

func TestStock_ListadoSinDispensario_Retorna400(t *testing.T) {
	f := newAPI(t)
	token := bearer(t, "u-1", entity.RoleUser)

	resp := f.call(t, http.MethodGet, "/api/stock", token, nil)
	assert.Equal(t, http.StatusBadRequest, decodeStatus(resp))

	resp = f.call(t, http.MethodGet, "/api/stock?dispensary_id="+dispensaryID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.StockItemResponse](t, resp), 2)
}

func TestStock_BajoStockListaSoloItemsBajoUmbral(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/stock/low?dispensary_id="+dispensaryID, bearer(t, "u-1", entity.RoleUser), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	low := decode[[]dto.StockItemResponse](t, resp)
	require.Len(t, low, 1)
	assert.Equal(t, itemUrgente, low[0].ID)
	assert.True(t, low[0].IsLowStock)
}

func TestStock_ItemInexistente_Retorna404(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/stock/no-existe", bearer(t, "u-1", entity.RoleUser), nil)
	assert.Equal(t, http.StatusNotFound, decodeStatus(resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Analítica predictiva
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalytics_DispensarioOrdenadoPorUrgencia(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/analytics/dispensary/"+dispensaryID, bearer(t, "u-1", entity.RoleUser), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.DispensaryAnalyticsResponse](t, resp)
	assert.Equal(t, 7, out.LeadTimeDays, "sin parámetro se informa el lead time configurado")
	assert.Equal(t, 1, out.NeedsReorderCount)
	require.Len(t, out.Items, 2)

	first := out.Items[0]
	assert.Equal(t, itemUrgente, first.StockItemID)
	assert.Equal(t, 1, first.Priority)
	assert.True(t, first.NeedsReorder)
	assert.Equal(t, 21, first.ReorderPoint)
	days, known := first.DaysUntilDepletion.Get()
	require.True(t, known)
	assert.Equal(t, 2, days, "4 unidades a 2 por día")

	second := out.Items[1]
	assert.Equal(t, itemHolgado, second.StockItemID)
	assert.False(t, second.NeedsReorder)
	assert.False(t, second.DaysUntilDepletion.IsKnown(), "sin consumo no hay fecha de agotamiento")
}

func TestAnalytics_LeadTimeInvalido_Retorna400(t *testing.T) {
	f := newAPI(t)
	token := bearer(t, "u-1", entity.RoleUser)

	for _, q := range []string{"-1", "abc"} {
		resp := f.call(t, http.MethodGet, "/api/analytics/dispensary/"+dispensaryID+"?lead_time_days="+q, token, nil)
		assert.Equal(t, http.StatusBadRequest, decodeStatus(resp), "lead_time_days=%s", q)
	}
}

func TestAnalytics_ItemInexistente_Retorna404(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/analytics/item/no-existe", bearer(t, "u-1", entity.RoleUser), nil)
	assert.Equal(t, http.StatusNotFound, decodeStatus(resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_CSVSeDevuelveComoJSON(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/export/low-stock?dispensary_id="+dispensaryID, bearer(t, "u-1", entity.RoleUser), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.ExportResponse](t, resp)
	assert.True(t, strings.HasPrefix(out.Filename, "low-stock-"))
	assert.True(t, strings.HasSuffix(out.Filename, ".csv"))
	assert.Contains(t, out.Data, "Amoxicilina")
	assert.NotContains(t, out.Data, "Gasas")
}

func TestExport_PDFSeDescargaComoAdjunto(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/export/stock-inventory?format=pdf&dispensary_id="+dispensaryID, bearer(t, "u-1", entity.RoleUser), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
}

func TestExport_ReporteDesconocido_Retorna400(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/export/ventas?dispensary_id="+dispensaryID, bearer(t, "u-1", entity.RoleUser), nil)
	assert.Equal(t, http.StatusBadRequest, decodeStatus(resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y preferencias
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuarios_SoloAdminOFounder(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, http.MethodGet, "/api/users", bearer(t, "ctrl-1", entity.RoleStockController), nil)
	assert.Equal(t, http.StatusForbidden, decodeStatus(resp))

	resp = f.call(t, http.MethodGet, "/api/users", bearer(t, "f-1", entity.RoleFounder), nil)
	assert.Equal(t, http.StatusOK, decodeStatus(resp))
}

func TestPreferencias_DefaultsYGuardado(t *testing.T) {
	f := newAPI(t)
	token := bearer(t, "u-1", entity.RoleUser)

	resp := f.call(t, http.MethodGet, "/api/preferences", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prefs := decode[dto.PreferencesResponse](t, resp)
	assert.True(t, prefs.EmailNotifications)
	assert.True(t, prefs.SMSNotifications)

	off := false
	disp := dispensaryID
	resp = f.call(t, http.MethodPut, "/api/preferences", token, dto.SavePreferencesRequest{SMSNotifications: &off, LastSelectedDispensaryID: &disp})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decode[dto.PreferencesResponse](t, resp)
	assert.True(t, saved.EmailNotifications)
	assert.False(t, saved.SMSNotifications)
	assert.Equal(t, dispensaryID, saved.LastSelectedDispensaryID)

	resp = f.call(t, http.MethodGet, "/api/preferences", token, nil)
	assert.False(t, decode[dto.PreferencesResponse](t, resp).SMSNotifications)
}
