package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

const saleNotFound = "venta no encontrada"

// SaleHandler maneja las peticiones HTTP para Sale.
type SaleHandler struct {
	uc *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         sales
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/ [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/sales/ [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err, saleNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/ [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, saleNotFound)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err, saleNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/ [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, saleNotFound)
	}
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		if _, gerr := h.uc.GetByID(c.Context(), id); gerr != nil {
			return writeError(c, gerr, saleNotFound)
		}
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err, saleNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Tags         sales
// @Param        id   path  int  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/ [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, saleNotFound)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, saleNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
