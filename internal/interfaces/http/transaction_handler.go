package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/inventory"
)

// TransactionHandler expone el historial de transacciones de stock.
type TransactionHandler struct {
	uc *inventory.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *inventory.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// ListByItem godoc
// @Summary      Historial de un ítem
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {array}  dto.StockTransactionResponse
// @Router       /api/transactions/item/{id} [get]
func (h *TransactionHandler) ListByItem(c *fiber.Ctx) error {
	list, err := h.uc.ListByItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListByDispensary godoc
// @Summary      Últimas transacciones de un dispensario
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        dispensary_id  query  string  true   "ID del dispensario"
// @Param        limit          query  int     false  "máximo de filas (default 100)"
// @Success      200  {array}  dto.StockTransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListByDispensary(c *fiber.Ctx) error {
	dispensaryID, err := requireQuery(c, "dispensary_id")
	if err != nil {
		return invalidParams(c, err)
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return invalidParams(c, err)
	}
	list, err := h.uc.ListByDispensary(c.UserContext(), dispensaryID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
