package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// parseID lee el parámetro :id. Un id no numérico no identifica ningún recurso (404).
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido: se esperaba JSON"})
}

// writeError traduce errores de la capa de aplicación a respuestas HTTP.
// Los errores no clasificados se delegan al ErrorHandler de Fiber (500).
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, notFoundMsg)
	case errors.Is(err, domain.ErrImport):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		return err
	}
}
