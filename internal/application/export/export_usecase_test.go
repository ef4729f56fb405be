package export_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinic-stock-api/internal/application/export"
	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
	"github.com/jhoicas/clinic-stock-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

type stubPDF struct{ got export.Table }

func (s *stubPDF) RenderTable(_ context.Context, t export.Table) ([]byte, error) {
	s.got = t
	return []byte("%PDF-stub"), nil
}

type stubAnalytics struct{ results []inventory.AnalyticsResult }

func (s stubAnalytics) GetDispensaryAnalytics(context.Context, string, int) ([]inventory.AnalyticsResult, error) {
	return s.results, nil
}

func newExport(pdf *stubPDF, analytics stubAnalytics) *export.ExportUseCase {
	price := decimal.RequireFromString("12.5")
	exp := now.AddDate(0, 0, 20)
	expired := now.AddDate(0, 0, -3)
	items := testutil.NewItemRepo(
		&entity.StockItem{ID: "1", DispensaryID: "d1", Name: "Amoxicilina", CategoryName: "Antibiotics", Quantity: 0, LowStockThreshold: 10, UnitPrice: &price, ExpirationDate: &exp, BatchNumber: "L-01"},
		&entity.StockItem{ID: "2", DispensaryID: "d1", Name: "Ibuprofeno, 400mg", CategoryName: "Pain Medication", Quantity: 5, LowStockThreshold: 10},
		&entity.StockItem{ID: "3", DispensaryID: "d1", Name: "Vitamina C", Quantity: 90, LowStockThreshold: 10, ExpirationDate: &expired},
	)
	txs := testutil.NewTxRepo(entity.StockTransaction{
		ID: "t1", StockItemID: "1", DispensaryID: "d1", TransactionType: entity.TransactionTypeIssued,
		Quantity: 3, PreviousQuantity: 3, NewQuantity: 0, ItemName: "Amoxicilina", CreatedAt: now,
	})
	dispensaries := testutil.NewDispensaryRepo(&entity.Dispensary{ID: "d1", Name: "Main Clinic Dispensary", IsActive: true})
	return export.NewExportUseCase(items, txs, dispensaries, analytics, pdf, 3).
		WithClock(func() time.Time { return now })
}

// ──────────────────────────────────────────────────────────────────────────────
// CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_LowStockCSV(t *testing.T) {
	uc := newExport(&stubPDF{}, stubAnalytics{})
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportLowStock, DispensaryID: "d1"})
	require.NoError(t, err)

	want := "name,category,quantity,low_stock_threshold,status,batch_number\n" +
		"Amoxicilina,Antibiotics,0,10,SIN STOCK,L-01\n" +
		"\"Ibuprofeno, 400mg\",Pain Medication,5,10,STOCK BAJO,-\n"
	assert.Equal(t, want, string(res.Data))
	assert.Equal(t, "low-stock-1743501600000.csv", res.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", res.ContentType)
}

func TestExport_StockInventoryCSV(t *testing.T) {
	uc := newExport(&stubPDF{}, stubAnalytics{})
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportStockInventory, DispensaryID: "d1"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(res.Data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Amoxicilina,Antibiotics,0,10,L-01,2025-04-21,12.50,-,-", lines[1])
	assert.Contains(t, lines[3], "Sin categoría")
}

func TestExport_ExpirationCSV(t *testing.T) {
	uc := newExport(&stubPDF{}, stubAnalytics{})
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportExpiration, DispensaryID: "d1"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(res.Data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Vitamina C,"), "vencido primero")
	assert.True(t, strings.HasSuffix(lines[1], ",-3,VENCIDO"))
	assert.True(t, strings.HasSuffix(lines[2], ",20,POR VENCER"))
}

func TestExport_TransactionHistoryCSV(t *testing.T) {
	uc := newExport(&stubPDF{}, stubAnalytics{})
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportTransactionHistory, DispensaryID: "d1"})
	require.NoError(t, err)
	assert.Contains(t, string(res.Data), "Amoxicilina,issued,3,3,0,-,Sistema,2025-04-01 10:00")
}

func TestExport_AnalyticsCSV(t *testing.T) {
	analytics := stubAnalytics{results: []inventory.AnalyticsResult{
		{Name: "Amoxicilina", CurrentQuantity: 4, AvgDailyConsumption: 2.0 / 3.0, DaysUntilDepletion: inventory.KnownDays(6), SafetyStock: 3, ReorderPoint: 8, RecommendedQuantity: 20, NeedsReorder: true},
		{Name: "Vitamina C", CurrentQuantity: 90, DaysUntilDepletion: inventory.UnknownDays()},
	}}
	uc := newExport(&stubPDF{}, analytics)
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportPredictiveAnalytics, DispensaryID: "d1"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(res.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,Amoxicilina,4,0.67,6,3,8,20,true", lines[1])
	assert.Equal(t, "2,Vitamina C,90,0.00,-,0,0,0,false", lines[2])
}

func TestExport_CSVWindows1252(t *testing.T) {
	uc := newExport(&stubPDF{}, stubAnalytics{})
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportStockInventory, DispensaryID: "d1", Charset: export.CharsetWindows1252})
	require.NoError(t, err)
	assert.Contains(t, string(res.Data), "Sin categor\xeda")
	assert.Equal(t, "text/csv; charset=windows-1252", res.ContentType)

	_, err = uc.Export(context.Background(), export.Request{Report: export.ReportStockInventory, DispensaryID: "d1", Charset: "latin-9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// HTML / PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_HTML(t *testing.T) {
	uc := newExport(&stubPDF{}, stubAnalytics{})
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportLowStock, DispensaryID: "d1", Format: export.FormatHTML})
	require.NoError(t, err)

	html := string(res.Data)
	assert.Contains(t, html, "<title>Stock bajo: Main Clinic Dispensary</title>")
	assert.Contains(t, html, "<th>Low Stock Threshold</th>")
	assert.Contains(t, html, "<td>SIN STOCK</td>")
	assert.Contains(t, html, "Generado el 2025-04-01 10:00")
	assert.True(t, strings.HasSuffix(res.Filename, ".html"))
}

func TestExport_PDFDelegaEnRenderer(t *testing.T) {
	pdf := &stubPDF{}
	uc := newExport(pdf, stubAnalytics{})
	res, err := uc.Export(context.Background(), export.Request{Report: export.ReportStockInventory, DispensaryID: "d1", Format: export.FormatPDF})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, "%PDF-stub", string(res.Data))
	assert.Len(t, pdf.got.Rows, 3)
	assert.Equal(t, "Inventario de stock: Main Clinic Dispensary", pdf.got.Title)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_Errores(t *testing.T) {
	uc := newExport(&stubPDF{}, stubAnalytics{})
	ctx := context.Background()

	_, err := uc.Export(ctx, export.Request{Report: "ventas", DispensaryID: "d1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, export.Request{Report: export.ReportLowStock, DispensaryID: "d1", Format: "xlsx"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, export.Request{Report: export.ReportLowStock})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, export.Request{Report: export.ReportLowStock, DispensaryID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Days Until Depletion", export.Header("days_until_depletion"))
	assert.Equal(t, "Name", export.Header("name"))
}
