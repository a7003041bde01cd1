package bomcalc

import "context"

// ReportPDFGenerator puerto de render del reporte de faltantes a PDF.
// La implementación vive en infraestructura (Maroto).
type ReportPDFGenerator interface {
	GenerateShortagePDF(ctx context.Context, report *ShortageReport) ([]byte, error)
}
