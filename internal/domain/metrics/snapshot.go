package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// ── Puntos de las series ──────────────────────────────────────────────────────

// MonthlyRevenuePoint ingreso total (tienda + servicios) de un mes calendario.
type MonthlyRevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// WeeklyRevenuePoint ingreso de una semana fija dentro de un mes.
type WeeklyRevenuePoint struct {
	Month       string          `json:"month"`
	Week        string          `json:"week"`
	Revenue     decimal.Decimal `json:"revenue"`
	DisplayName string          `json:"display_name"` // "Mes-WeekN" para el eje del chart
}

// MonthlyProductsPoint unidades vendidas en un mes calendario.
type MonthlyProductsPoint struct {
	Month    string `json:"month"`
	Products int    `json:"products"`
}

// WeeklyProductsPoint unidades vendidas en una semana fija de un mes.
type WeeklyProductsPoint struct {
	Month       string `json:"month"`
	Week        string `json:"week"`
	Products    int    `json:"products"`
	DisplayName string `json:"display_name"`
}

// ServiceMonthPoint conteo de servicios por categoría en un mes calendario.
// El mes aparece en la serie si tuvo al menos una cita concluida, aunque
// ninguna haya sido clasificable (los tres conteos quedan en cero).
type ServiceMonthPoint struct {
	Month        string `json:"month"`
	Consultation int    `json:"Consultation"`
	Grooming     int    `json:"Grooming"`
	DentalCare   int    `json:"Dental Care"`
}

// CategoryCounts conteo de citas clasificadas por categoría.
type CategoryCounts map[Category]int

// BreakdownEntry participación porcentual de una categoría en el desglose de
// servicios. Solo se emiten entradas con valor > 0.
type BreakdownEntry struct {
	Name  Category `json:"name"`
	Value int      `json:"value"` // porcentaje redondeado al entero más cercano
}

// ── Snapshot ──────────────────────────────────────────────────────────────────

// Snapshot es el objeto de métricas normalizado que consumen los widgets del
// dashboard (KPI cards, charts mensuales/semanales, desglose de servicios) y
// el exporte de reportes.
type Snapshot struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ShopRevenue    decimal.Decimal `json:"shop_revenue"`
	ServiceRevenue decimal.Decimal `json:"service_revenue"`
	TotalCustomers int             `json:"total_customers"`
	TotalProducts  int             `json:"total_products"` // unidades vendidas, no SKUs

	MonthlyRevenue  []MonthlyRevenuePoint  `json:"monthly_revenue"`
	WeeklyRevenue   []WeeklyRevenuePoint   `json:"weekly_revenue"`
	MonthlyProducts []MonthlyProductsPoint `json:"monthly_products"`
	WeeklyProducts  []WeeklyProductsPoint  `json:"weekly_products"`
	MonthlyServices []ServiceMonthPoint    `json:"monthly_services"`

	ServiceBreakdown []BreakdownEntry `json:"service_breakdown"`

	// ServiceBreakdownByMonth guarda los conteos crudos por llave "YYYY-MM"
	// para que el filtro de mes derive porcentajes sin reprocesar las citas.
	ServiceBreakdownByMonth map[string]CategoryCounts `json:"service_breakdown_by_month"`
}

// ── Órdenes lógicas ───────────────────────────────────────────────────────────

// OrderItem línea de producto dentro de una orden lógica. LineID y Status
// solo se pueblan en la vista de historial (GroupLines); el agregador de
// métricas no los necesita.
type OrderItem struct {
	LineID       string          `json:"line_id,omitempty"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Status       string          `json:"status,omitempty"`
}

// LogicalOrder es un evento de checkout: todas las líneas que comparten
// usuario y timestamp de creación (al milisegundo).
type LogicalOrder struct {
	OrderID  string          `json:"order_id"` // llave de agrupación userId_epochMillis
	UserID   string          `json:"user_id"`
	UserName string          `json:"user_name"`
	Date     time.Time       `json:"date"`
	Items    []OrderItem     `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Status   string          `json:"status,omitempty"` // estado de la primera línea (vista de historial)
}

// ── Resultado de la agregación ────────────────────────────────────────────────

// Result es la salida completa de una pasada de agregación: el snapshot de
// métricas más los registros normalizados que el filtro de mes re-suma y los
// históricos que muestran las tablas del dashboard.
type Result struct {
	Snapshot        Snapshot
	Orders          []LogicalOrder       // ordenadas por fecha descendente
	Appointments    []entity.Appointment // solo citas concluidas
	AvailableMonths []string             // llaves "YYYY-MM" ordenadas ascendente
}
