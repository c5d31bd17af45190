package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
)

// ImportHandler recibe la carga masiva de productos por CSV.
type ImportHandler struct {
	importer *importer.ProductCSVImporter
	maxBytes int64
}

// NewImportHandler construye el handler; maxBytes limita el tamaño del archivo.
func NewImportHandler(imp *importer.ProductCSVImporter, maxBytes int64) *ImportHandler {
	return &ImportHandler{importer: imp, maxBytes: maxBytes}
}

// UploadCSV godoc
// @Summary      Carga masiva de productos (CSV)
// @Description  Columnas: name, price y opcionalmente category, description. Upsert por nombre;
// @Description  todo el archivo se aplica en una sola transacción.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      201   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/upload-csv/ [post]
func (h *ImportHandler) UploadCSV(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "no se envió ningún archivo"})
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("el archivo supera el tamaño máximo de %d bytes", h.maxBytes),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer f.Close()

	count, err := h.importer.Import(c.Context(), f)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportResultDTO{
		Message: fmt.Sprintf("%d productos procesados correctamente", count),
		Count:   count,
	})
}
