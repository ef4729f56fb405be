// Package export genera los reportes descargables (CSV, HTML, PDF) de un dispensario.
package export

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
)

// Reportes disponibles.
const (
	ReportStockInventory      = "stock-inventory"
	ReportTransactionHistory  = "transaction-history"
	ReportLowStock            = "low-stock"
	ReportExpiration          = "expiration-report"
	ReportPredictiveAnalytics = "predictive-analytics"
)

// Formatos de salida.
const (
	FormatCSV  = "csv"
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

const (
	exportTransactionLimit = 10000
	emptyCell              = "-"
	dateLayout             = "2006-01-02"
	dateTimeLayout         = "2006-01-02 15:04"
)

// Request parámetros de exportación.
type Request struct {
	Report       string
	Format       string // csv (por defecto) | html | pdf
	Charset      string // solo CSV: utf-8 (por defecto) | windows-1252
	DispensaryID string
	LeadTimeDays int // solo predictive-analytics; 0 usa el configurado
}

// Result archivo generado.
type Result struct {
	Data        []byte
	Filename    string // <reporte>-<unix ms>.<ext>
	ContentType string
}

// ExportUseCase arma la tabla de cada reporte y la renderiza en el formato pedido.
type ExportUseCase struct {
	itemRepo           repository.StockItemRepository
	txRepo             repository.StockTransactionRepository
	dispensaryRepo     repository.DispensaryRepository
	analytics          AnalyticsSource
	pdf                PDFRenderer
	expiryWindowMonths int
	now                func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	itemRepo repository.StockItemRepository,
	txRepo repository.StockTransactionRepository,
	dispensaryRepo repository.DispensaryRepository,
	analytics AnalyticsSource,
	pdf PDFRenderer,
	expiryWindowMonths int,
) *ExportUseCase {
	if expiryWindowMonths <= 0 {
		expiryWindowMonths = 3
	}
	return &ExportUseCase{
		itemRepo:           itemRepo,
		txRepo:             txRepo,
		dispensaryRepo:     dispensaryRepo,
		analytics:          analytics,
		pdf:                pdf,
		expiryWindowMonths: expiryWindowMonths,
		now:                time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ExportUseCase) WithClock(now func() time.Time) *ExportUseCase {
	uc.now = now
	return uc
}

// Export genera el reporte pedido.
func (uc *ExportUseCase) Export(ctx context.Context, req Request) (*Result, error) {
	if req.DispensaryID == "" {
		return nil, fmt.Errorf("%w: dispensary_id es obligatorio", domain.ErrInvalidInput)
	}
	if req.Format == "" {
		req.Format = FormatCSV
	}
	switch req.Format {
	case FormatCSV, FormatHTML, FormatPDF:
	default:
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, req.Format)
	}
	dispensary, err := uc.dispensaryRepo.GetByID(ctx, req.DispensaryID)
	if err != nil {
		return nil, err
	}
	if dispensary == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	table, err := uc.buildTable(ctx, req, dispensary, now)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	switch req.Format {
	case FormatCSV:
		res.Data, err = RenderCSV(table, req.Charset)
		res.ContentType = "text/csv; charset=" + csvCharset(req.Charset)
	case FormatHTML:
		res.Data, err = RenderHTML(table)
		res.ContentType = "text/html; charset=utf-8"
	case FormatPDF:
		res.Data, err = uc.pdf.RenderTable(ctx, table)
		res.ContentType = "application/pdf"
	}
	if err != nil {
		return nil, err
	}
	res.Filename = fmt.Sprintf("%s-%d.%s", req.Report, now.UnixMilli(), req.Format)
	return res, nil
}

func (uc *ExportUseCase) buildTable(ctx context.Context, req Request, d *entity.Dispensary, now time.Time) (Table, error) {
	t := Table{GeneratedAt: now}
	switch req.Report {
	case ReportStockInventory:
		items, err := uc.itemRepo.ListByDispensary(ctx, d.ID)
		if err != nil {
			return t, err
		}
		t.Title = "Inventario de stock: " + d.Name
		t.Columns = []string{"name", "category", "quantity", "low_stock_threshold", "batch_number", "expiration_date", "unit_price", "source", "notes"}
		for _, it := range items {
			t.Rows = append(t.Rows, []string{
				it.Name, categoryName(it), strconv.Itoa(it.Quantity), strconv.Itoa(it.LowStockThreshold),
				orEmpty(it.BatchNumber), formatDate(it.ExpirationDate), formatPrice(it.UnitPrice),
				orEmpty(it.Source), orEmpty(it.Notes),
			})
		}

	case ReportTransactionHistory:
		txs, err := uc.txRepo.ListByDispensary(ctx, d.ID, exportTransactionLimit)
		if err != nil {
			return t, err
		}
		t.Title = "Historial de transacciones: " + d.Name
		t.Columns = []string{"item_name", "transaction_type", "quantity", "previous_quantity", "new_quantity", "reason", "user_name", "created_at"}
		for _, tx := range txs {
			user := tx.UserName
			if user == "" {
				user = "Sistema"
			}
			t.Rows = append(t.Rows, []string{
				orEmpty(tx.ItemName), tx.TransactionType, strconv.Itoa(tx.Quantity),
				strconv.Itoa(tx.PreviousQuantity), strconv.Itoa(tx.NewQuantity),
				orEmpty(tx.Reason), user, tx.CreatedAt.Format(dateTimeLayout),
			})
		}

	case ReportLowStock:
		items, err := uc.itemRepo.ListLowStock(ctx, d.ID)
		if err != nil {
			return t, err
		}
		t.Title = "Stock bajo: " + d.Name
		t.Columns = []string{"name", "category", "quantity", "low_stock_threshold", "status", "batch_number"}
		for _, it := range items {
			status := "STOCK BAJO"
			if it.IsOutOfStock() {
				status = "SIN STOCK"
			}
			t.Rows = append(t.Rows, []string{
				it.Name, categoryName(it), strconv.Itoa(it.Quantity), strconv.Itoa(it.LowStockThreshold),
				status, orEmpty(it.BatchNumber),
			})
		}

	case ReportExpiration:
		items, err := uc.itemRepo.ListExpiringBefore(ctx, d.ID, now.AddDate(0, uc.expiryWindowMonths, 0))
		if err != nil {
			return t, err
		}
		t.Title = "Reporte de vencimientos: " + d.Name
		t.Columns = []string{"name", "category", "quantity", "batch_number", "expiration_date", "days_until_expiry", "status"}
		for _, it := range items {
			days, status := emptyCell, emptyCell
			if it.ExpirationDate != nil {
				n := int(math.Floor(it.ExpirationDate.Sub(now).Hours() / 24))
				days = strconv.Itoa(n)
				status = "POR VENCER"
				if n < 0 {
					status = "VENCIDO"
				}
			}
			t.Rows = append(t.Rows, []string{
				it.Name, categoryName(it), strconv.Itoa(it.Quantity), orEmpty(it.BatchNumber),
				formatDate(it.ExpirationDate), days, status,
			})
		}

	case ReportPredictiveAnalytics:
		ranked, err := uc.analytics.GetDispensaryAnalytics(ctx, d.ID, req.LeadTimeDays)
		if err != nil {
			return t, err
		}
		t.Title = "Analítica predictiva: " + d.Name
		t.Columns = []string{"priority", "name", "current_quantity", "avg_daily_consumption", "days_until_depletion", "safety_stock", "reorder_point", "recommended_quantity", "needs_reorder"}
		for i, r := range ranked {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(i + 1), r.Name, strconv.Itoa(r.CurrentQuantity),
				decimal.NewFromFloat(r.AvgDailyConsumption).StringFixed(2),
				daysCell(r.DaysUntilDepletion.Get()),
				strconv.Itoa(r.SafetyStock), strconv.Itoa(r.ReorderPoint), strconv.Itoa(r.RecommendedQuantity),
				strconv.FormatBool(r.NeedsReorder),
			})
		}

	default:
		return t, fmt.Errorf("%w: reporte %q no existe", domain.ErrInvalidInput, req.Report)
	}
	return t, nil
}

func csvCharset(charset string) string {
	if charset == "" {
		return CharsetUTF8
	}
	return charset
}

func categoryName(it *entity.StockItem) string {
	if it.CategoryName == "" {
		return "Sin categoría"
	}
	return it.CategoryName
}

func orEmpty(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return emptyCell
	}
	return t.Format(dateLayout)
}

func formatPrice(p *decimal.Decimal) string {
	if p == nil {
		return emptyCell
	}
	return p.StringFixed(2)
}

func daysCell(days int, known bool) string {
	if !known {
		return emptyCell
	}
	return strconv.Itoa(days)
}
