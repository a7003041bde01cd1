// Package pdf implementa la representación imprimible del reporte de
// faltantes de materiales para una orden de producción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + código  │  Cantidad a producir + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales por estado + puede producir               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Material | Requerido | Libre | Faltante |  │
//	│         Estado                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COSTO TOTAL DEL BOM                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/tu-usuario/manufactura-api/internal/application/bomcalc"
	bomdomain "github.com/tu-usuario/manufactura-api/internal/domain/bom"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK       = &props.Color{Red: 0, Green: 128, Blue: 0}
	colorWarn     = &props.Color{Red: 200, Green: 130, Blue: 0}
	colorCritical = &props.Color{Red: 180, Green: 0, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ bomcalc.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa bomcalc.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateShortagePDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateShortagePDF(_ context.Context, report *bomcalc.ShortageReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Faltantes de Materiales", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(&report.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMaterialRows(report.Materials) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(costRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto + código (izq) y cantidad a producir + fecha (der).
func headerRow(report *bomcalc.ShortageReport) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.ProductName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+report.ProductCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE FALTANTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Producir: "+report.ProductionQty.String(), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: conteos por estado y veredicto de producibilidad.
func summaryRow(s *bomcalc.ShortageSummary) core.Row {
	verdict := "NO PUEDE PRODUCIRSE"
	verdictColor := colorCritical
	if s.CanProduce {
		verdict = "PUEDE PRODUCIRSE"
		verdictColor = colorOK
	}

	return row.New(14).Add(
		col.New(8).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Materiales: %d   |   Suficientes: %d   |   Moderados: %d   |   Críticos: %d   |   Agotados: %d   |   Por comprar: %d",
				s.TotalMaterials, s.Sufficient, s.Moderate, s.Critical, s.OutOfStock, s.ProcurementRequired,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(verdict, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: verdictColor, Top: 5,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Material", 3, align.Left),
		h("Requerido", 2, align.Right),
		h("Libre", 2, align.Right),
		h("Faltante", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableMaterialRows: una fila por material, con el estado coloreado.
func tableMaterialRows(materials []bomcalc.MaterialShortage) []core.Row {
	result := make([]core.Row, 0, len(materials))
	for _, mat := range materials {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mat.MaterialCode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				mat.MaterialName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				mat.RequiredQty.String()+" "+mat.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				mat.FreeQty.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				mat.ShortageQty.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				string(mat.ShortageStatus),
				props.Text{
					Style: fontstyle.Bold, Size: 8, Align: align.Center,
					Top: 1, Color: statusColor(mat.ShortageStatus),
				},
			)),
		))
	}
	return result
}

// costRow: costo total del BOM escalado a la producción solicitada.
func costRow(report *bomcalc.ShortageReport) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(4).Add(
			text.New("Costo total de materiales: $"+report.TotalBOMCost.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func statusColor(status bomdomain.ShortageStatus) *props.Color {
	switch status {
	case bomdomain.StatusSufficient:
		return colorOK
	case bomdomain.StatusModerate:
		return colorWarn
	default:
		return colorCritical
	}
}
