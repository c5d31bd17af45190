// Package pdf genera el reporte imprimible del análisis de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período    │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: Ingresos | Cantidad promedio | Transacciones      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Ingresos | % del total                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.SalesReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.SalesReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author aparece en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(_ context.Context, report dto.SalesReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(report.Analysis.Metrics))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(report.Analysis)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report dto.SalesReportDTO) core.Row {
	subtitle := "Período: " + report.Period
	if report.CategoryID != nil {
		subtitle += "   |   Categoría #" + strconv.FormatInt(*report.CategoryID, 10)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// metricsRow: tres bloques con las métricas agregadas.
func metricsRow(m dto.SalesMetricsDTO) core.Row {
	block := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Center,
			}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 7, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		block("INGRESOS TOTALES", "$"+formatMoney(m.TotalRevenue)),
		block("CANTIDAD PROMEDIO", strconv.FormatFloat(m.AvgQuantity, 'f', 2, 64)),
		block("TRANSACCIONES", strconv.Itoa(m.TotalTransactions)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Ingresos", 3, align.Right),
		h("% del total", 2, align.Right),
	)
}

// tableDetailRows: una fila por producto, en el orden del ranking.
func tableDetailRows(a dto.SalesAnalysisDTO) []core.Row {
	if len(a.ProductsPerformance) == 0 {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New("Sin ventas para los filtros indicados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		))}
	}
	result := make([]core.Row, 0, len(a.ProductsPerformance))
	for i, p := range a.ProductsPerformance {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(p.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New("$"+formatMoney(p.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(share(p.Revenue, a.Metrics.TotalRevenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con 2 decimales y separador de miles.
// Ej: 25000.5 → "25,000.50"
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

func share(part, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(part/total*100, 'f', 1, 64) + "%"
}
