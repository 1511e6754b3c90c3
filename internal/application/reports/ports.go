package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
)

// Notifier es el colaborador de notificaciones del dashboard (el "toast").
// Los fallos de fetch se reportan aquí; el snapshot vigente no se toca.
type Notifier interface {
	Error(ctx context.Context, message string, err error)
}

// ReportPDFGenerator genera el documento de exporte del reporte de negocio.
type ReportPDFGenerator interface {
	GenerateReportPDF(
		ctx context.Context,
		snapshot metrics.Snapshot,
		monthLabel string,
		generatedAt time.Time,
	) ([]byte, error)
}
