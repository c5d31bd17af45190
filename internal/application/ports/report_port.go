package ports

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// SalesReportGenerator define el puerto de salida para renderizar el análisis de ventas.
// El adaptador actual produce PDF (maroto); la aplicación solo conoce este contrato.
type SalesReportGenerator interface {
	GenerateSalesReport(ctx context.Context, report dto.SalesReportDTO) ([]byte, error)
}
