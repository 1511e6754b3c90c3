package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
)

// ExportUseCase produce el PDF del reporte de negocio a partir del snapshot
// vigente del Service.
type ExportUseCase struct {
	service   *Service
	generator ReportPDFGenerator
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso de exporte.
func NewExportUseCase(service *Service, generator ReportPDFGenerator) *ExportUseCase {
	return &ExportUseCase{
		service:   service,
		generator: generator,
		now:       time.Now,
	}
}

// ExportResult bytes del PDF más el nombre de archivo sugerido.
type ExportResult struct {
	Content  []byte
	Filename string
}

// Export genera el PDF con el filtro de mes vigente aplicado. Devuelve
// ErrNotFound si todavía no hay un recálculo aplicado.
func (uc *ExportUseCase) Export(ctx context.Context) (*ExportResult, error) {
	snap, selected, ok := uc.service.Filtered()
	if !ok {
		return nil, domain.ErrNotFound
	}

	generatedAt := uc.now()
	content, err := uc.generator.GenerateReportPDF(ctx, snap, metrics.MonthLabel(selected), generatedAt)
	if err != nil {
		return nil, fmt.Errorf("generar PDF del reporte: %w", err)
	}

	suffix := selected
	if selected == metrics.AllMonths {
		suffix = "all-time"
	}
	return &ExportResult{
		Content:  content,
		Filename: fmt.Sprintf("reporte-negocio-%s-%s.pdf", suffix, generatedAt.Format("20060102")),
	}, nil
}
