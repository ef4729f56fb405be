package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/application/export"
)

// ExportHandler descarga de reportes.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar reporte
// @Description  Reportes: stock-inventory, transaction-history, low-stock, expiration-report, predictive-analytics.
//               CSV UTF-8 y HTML se devuelven como JSON {data, filename}; PDF y CSV windows-1252 como archivo adjunto.
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        report          path   string  true   "tipo de reporte"
// @Param        dispensary_id   query  string  true   "ID del dispensario"
// @Param        format          query  string  false  "csv (default) | html | pdf"
// @Param        charset         query  string  false  "utf-8 (default) | windows-1252 (solo csv)"
// @Param        lead_time_days  query  int     false  "solo predictive-analytics"
// @Success      200  {object}  dto.ExportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/{report} [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	leadTime, err := queryInt(c, "lead_time_days", 0)
	if err != nil {
		return invalidParams(c, err)
	}
	req := export.Request{
		Report:       c.Params("report"),
		Format:       c.Query("format", export.FormatCSV),
		Charset:      c.Query("charset"),
		DispensaryID: c.Query("dispensary_id"),
		LeadTimeDays: leadTime,
	}
	res, err := h.uc.Export(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	if req.Format == export.FormatPDF || req.Charset == export.CharsetWindows1252 {
		c.Attachment(res.Filename)
		c.Set(fiber.HeaderContentType, res.ContentType)
		return c.Send(res.Data)
	}
	return c.JSON(dto.ExportResponse{Data: string(res.Data), Filename: res.Filename})
}
