package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/application/inventory"
)

// StockHandler maneja los ítems de stock y los ajustes de cantidad.
type StockHandler struct {
	stock  *inventory.StockUseCase
	adjust *inventory.AdjustQuantityUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase, adjust *inventory.AdjustQuantityUseCase) *StockHandler {
	return &StockHandler{stock: stock, adjust: adjust}
}

// List godoc
// @Summary      Listar ítems de un dispensario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        dispensary_id  query  string  true  "ID del dispensario"
// @Success      200  {array}  dto.StockItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	dispensaryID, err := requireQuery(c, "dispensary_id")
	if err != nil {
		return invalidParams(c, err)
	}
	list, err := h.stock.ListByDispensary(c.UserContext(), dispensaryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListByCategory godoc
// @Summary      Listar ítems de una categoría
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        dispensary_id  query  string  true  "ID del dispensario"
// @Param        category_id    query  string  true  "ID de la categoría"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock/by-category [get]
func (h *StockHandler) ListByCategory(c *fiber.Ctx) error {
	dispensaryID, err := requireQuery(c, "dispensary_id")
	if err != nil {
		return invalidParams(c, err)
	}
	categoryID, err := requireQuery(c, "category_id")
	if err != nil {
		return invalidParams(c, err)
	}
	list, err := h.stock.ListByCategory(c.UserContext(), dispensaryID, categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListLowStock godoc
// @Summary      Ítems en o bajo su umbral de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        dispensary_id  query  string  true  "ID del dispensario"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) ListLowStock(c *fiber.Ctx) error {
	dispensaryID, err := requireQuery(c, "dispensary_id")
	if err != nil {
		return invalidParams(c, err)
	}
	list, err := h.stock.ListLowStock(c.UserContext(), dispensaryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListExpiring godoc
// @Summary      Ítems vencidos o por vencer dentro de la ventana de alerta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        dispensary_id  query  string  true  "ID del dispensario"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock/expiring [get]
func (h *StockHandler) ListExpiring(c *fiber.Ctx) error {
	dispensaryID, err := requireQuery(c, "dispensary_id")
	if err != nil {
		return invalidParams(c, err)
	}
	list, err := h.stock.ListExpiring(c.UserContext(), dispensaryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener ítem
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.stock.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Create godoc
// @Summary      Crear ítem de stock
// @Description  Si quantity > 0 registra una transacción received "Stock inicial".
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "datos del ítem"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.stock.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update godoc
// @Summary      Actualizar datos de un ítem (no la cantidad)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del ítem"
// @Param        body  body  dto.UpdateStockItemRequest  true  "campos a modificar"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.stock.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         stock
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.stock.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Adjust godoc
// @Summary      Registrar movimiento de stock
// @Description  received suma, issued y lost restan (mínimo 0), adjustment fija la cantidad contada.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustQuantityRequest  true  "stock_item_id, transaction_type, quantity"
// @Success      200   {object}  dto.AdjustQuantityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.adjust.Adjust(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
