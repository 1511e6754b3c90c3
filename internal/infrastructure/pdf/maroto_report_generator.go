// Package pdf implementa la generación del reporte de negocio exportable.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PetCare Pro │ Reporte de Negocio + período + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ingreso total / Tienda / Servicios / Clientes / Uds   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingreso por mes                                     │
//	│  TABLA: Desglose de servicios (%)                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
	"github.com/tu-usuario/petcare-pro/pkg/currency"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 93}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// GenerateReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(
	_ context.Context,
	snapshot metrics.Snapshot,
	monthLabel string,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Negocio", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, monthLabel, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitleRow("INDICADORES"))
	m.AddRows(kpiRows(snapshot)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("INGRESO POR MES"))
	m.AddRows(revenueTableHeaderRow())
	for _, r := range revenueTableRows(snapshot) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("DESGLOSE DE SERVICIOS"))
	for _, r := range breakdownRows(snapshot) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la app (izq) y período + fecha de generación (der).
func headerRow(appName, monthLabel string, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de Negocio", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO: "+monthLabel, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

// kpiRows: dos filas de indicadores principales.
func kpiRows(snap metrics.Snapshot) []core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return []core.Row{
		row.New(12).Add(
			kpi("Ingreso total", currency.FormatPHP(snap.TotalRevenue)),
			kpi("Ingreso tienda", currency.FormatPHP(snap.ShopRevenue)),
			kpi("Ingreso servicios", currency.FormatPHP(snap.ServiceRevenue)),
		),
		row.New(12).Add(
			kpi("Clientes registrados", strconv.Itoa(snap.TotalCustomers)),
			kpi("Unidades vendidas", strconv.Itoa(snap.TotalProducts)),
			col.New(4),
		),
	}
}

func revenueTableHeaderRow() core.Row {
	header := func(size int, label string, al align.Type) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: al, Top: 1}),
		)
	}
	return row.New(6).Add(
		header(6, "Mes", align.Left),
		header(6, "Ingreso", align.Right),
	)
}

func revenueTableRows(snap metrics.Snapshot) []core.Row {
	rows := make([]core.Row, 0, len(snap.MonthlyRevenue))
	for _, p := range snap.MonthlyRevenue {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(p.Month, props.Text{Size: 8})),
			col.New(6).Add(text.New(currency.FormatPHP(p.Revenue), props.Text{Size: 8, Align: align.Right})),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("Sin movimientos en el período", props.Text{Size: 8, Color: colorGray})),
		))
	}
	return rows
}

func breakdownRows(snap metrics.Snapshot) []core.Row {
	rows := make([]core.Row, 0, len(snap.ServiceBreakdown))
	for _, e := range snap.ServiceBreakdown {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(string(e.Name), props.Text{Size: 8})),
			col.New(6).Add(text.New(strconv.Itoa(e.Value)+"%", props.Text{Size: 8, Align: align.Right})),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("Sin servicios concluidos en el período", props.Text{Size: 8, Color: colorGray})),
		))
	}
	return rows
}
