package dto

import (
	"time"

	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
)

// ReportsResponse respuesta de GET /api/reports/metrics.
// El snapshot ya viene filtrado según la selección de mes vigente.
type ReportsResponse struct {
	Metrics         metrics.Snapshot `json:"metrics"`
	SelectedMonth   string           `json:"selected_month"` // "all" o "YYYY-MM"
	SelectedLabel   string           `json:"selected_label"` // "All Time" o "March 2024"
	AvailableMonths []string         `json:"available_months"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// MonthSelectionRequest cuerpo de POST /api/reports/month.
type MonthSelectionRequest struct {
	Month string `json:"month"` // "all" o "YYYY-MM"
}

// MonthsResponse respuesta de GET /api/reports/months.
type MonthsResponse struct {
	AvailableMonths []string `json:"available_months"`
	SelectedMonth   string   `json:"selected_month"`
}

// OrderHistoryResponse respuesta de GET /api/reports/orders (tabla de órdenes
// lógicas del dashboard, opcionalmente filtrada por mes).
type OrderHistoryResponse struct {
	Orders []metrics.LogicalOrder `json:"orders"`
}
