package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/analytics"
)

// AnalyticsHandler expone la analítica predictiva de stock.
type AnalyticsHandler struct {
	uc *analytics.PredictiveUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.PredictiveUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dispensary godoc
// @Summary      Analítica predictiva de un dispensario
// @Description  Consumo diario promedio, días hasta agotarse y punto de reorden de cada ítem,
//               ordenados por urgencia (primero los que necesitan reorden, luego por días hasta agotarse).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id              path   string  true   "ID del dispensario"
// @Param        lead_time_days  query  int     false  "días de reposición (default configurado, 7)"
// @Success      200  {object}  dto.DispensaryAnalyticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/analytics/dispensary/{id} [get]
func (h *AnalyticsHandler) Dispensary(c *fiber.Ctx) error {
	leadTime, err := queryInt(c, "lead_time_days", 0)
	if err != nil {
		return invalidParams(c, err)
	}
	dispensaryID := c.Params("id")
	ranked, err := h.uc.GetDispensaryAnalytics(c.UserContext(), dispensaryID, leadTime)
	if err != nil {
		return respondError(c, err)
	}
	if leadTime == 0 {
		leadTime = h.uc.Policy().LeadTimeDays
	}
	return c.JSON(analytics.ToRankedResponse(dispensaryID, leadTime, ranked))
}

// Item godoc
// @Summary      Analítica predictiva de un ítem
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id              path   string  true   "ID del ítem"
// @Param        lead_time_days  query  int     false  "días de reposición (default configurado, 7)"
// @Success      200  {object}  dto.AnalyticsResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/item/{id} [get]
func (h *AnalyticsHandler) Item(c *fiber.Ctx) error {
	leadTime, err := queryInt(c, "lead_time_days", 0)
	if err != nil {
		return invalidParams(c, err)
	}
	result, err := h.uc.GetItemAnalyticsByID(c.UserContext(), c.Params("id"), leadTime)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics.ToDTO(result))
}
