package export

import (
	"context"

	"github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
)

// PDFRenderer genera un PDF a partir de una tabla.
type PDFRenderer interface {
	RenderTable(ctx context.Context, table Table) ([]byte, error)
}

// AnalyticsSource analítica predictiva ya ordenada por urgencia.
type AnalyticsSource interface {
	GetDispensaryAnalytics(ctx context.Context, dispensaryID string, leadTimeDays int) ([]inventory.AnalyticsResult, error)
}
