package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
	"github.com/jhoicas/clinic-stock-api/internal/application/usecase"
)

// DispensaryHandler maneja los endpoints de dispensarios.
type DispensaryHandler struct {
	uc *usecase.DispensaryUseCase
}

// NewDispensaryHandler construye el handler.
func NewDispensaryHandler(uc *usecase.DispensaryUseCase) *DispensaryHandler {
	return &DispensaryHandler{uc: uc}
}

// List godoc
// @Summary      Listar dispensarios activos
// @Tags         dispensaries
// @Produce      json
// @Success      200  {array}  dto.DispensaryResponse
// @Router       /api/dispensaries [get]
func (h *DispensaryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener dispensario
// @Tags         dispensaries
// @Produce      json
// @Param        id   path  string  true  "ID del dispensario"
// @Success      200  {object}  dto.DispensaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispensaries/{id} [get]
func (h *DispensaryHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// Create godoc
// @Summary      Crear dispensario
// @Tags         dispensaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDispensaryRequest  true  "name, type (main_clinic|pod_mobile)"
// @Success      201   {object}  dto.DispensaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/dispensaries [post]
func (h *DispensaryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDispensaryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	d, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}
