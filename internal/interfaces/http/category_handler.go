package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/catalog"
	"github.com/jhoicas/clinic-stock-api/internal/application/dto"
)

// CategoryHandler maneja categorías y la clasificación asistida de medicamentos.
type CategoryHandler struct {
	uc *catalog.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name, description, sort_order"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cat, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// Classify godoc
// @Summary      Sugerir categoría para un medicamento
// @Description  Consulta al modelo de IA (timeout 10 s). category_id es null si la sugerencia no coincide con una categoría existente.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClassifyMedicationRequest  true  "name"
// @Success      200   {object}  dto.ClassifyMedicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/categories/classify [post]
func (h *CategoryHandler) Classify(c *fiber.Ctx) error {
	var in dto.ClassifyMedicationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ClassifyMedication(c.UserContext(), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
