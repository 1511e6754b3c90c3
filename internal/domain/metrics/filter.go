package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/petcare-pro/pkg/currency"
)

// AllMonths es el valor centinela del filtro "todo el histórico".
const AllMonths = "all"

// ApplyMonthFilter re-deriva los KPIs del snapshot para el mes seleccionado
// ("YYYY-MM") re-sumando los registros originales de ese mes calendario.
//
// Las series mensuales/semanales NO se recortan: los charts siempre muestran
// el histórico completo. El desglose de servicios no se recalcula: se busca
// en ServiceBreakdownByMonth y cae a vacío si el mes no tiene citas.
// La comparación de mes ignora el día (solo año + mes calendario).
func ApplyMonthFilter(res *Result, selected string) Snapshot {
	if res == nil {
		return Snapshot{}
	}
	snap := res.Snapshot
	if selected == "" || selected == AllMonths {
		return snap
	}

	target, err := time.Parse("2006-01", selected)
	matches := func(t time.Time) bool {
		if err != nil {
			// selección ilegible: ningún registro matchea, totales en cero
			return false
		}
		u := t.UTC()
		return u.Year() == target.Year() && u.Month() == target.Month()
	}

	shopRevenue := decimal.Zero
	totalProducts := 0
	activeUsers := make(map[string]struct{})

	for _, order := range res.Orders {
		if !matches(order.Date) {
			continue
		}
		shopRevenue = shopRevenue.Add(order.Total)
		for _, item := range order.Items {
			totalProducts += item.Quantity
		}
		activeUsers[order.UserID] = struct{}{}
	}

	serviceRevenue := decimal.Zero
	for _, apt := range res.Appointments {
		date, ok := apt.ServiceDate()
		if !ok || !matches(date) {
			continue
		}
		serviceRevenue = serviceRevenue.Add(currency.ParseLenientDecimal(apt.Price))
		activeUsers[apt.UserID] = struct{}{}
	}

	snap.ShopRevenue = shopRevenue
	snap.ServiceRevenue = serviceRevenue
	snap.TotalRevenue = shopRevenue.Add(serviceRevenue)
	snap.TotalProducts = totalProducts
	snap.TotalCustomers = len(activeUsers)
	snap.ServiceBreakdown = BreakdownFromCounts(res.Snapshot.ServiceBreakdownByMonth[selected])
	return snap
}

// InitialSelection decide el filtro inicial: el mes calendario actual si está
// entre los meses disponibles, si no el centinela "all".
func InitialSelection(availableMonths []string, now time.Time) string {
	current := YearMonthKey(now)
	for _, ym := range availableMonths {
		if ym == current {
			return current
		}
	}
	return AllMonths
}

// MonthLabel devuelve la etiqueta legible de una selección de mes para el
// dropdown y el encabezado del exporte, ej. "March 2024". "all" → "All Time".
func MonthLabel(selected string) string {
	if selected == "" || selected == AllMonths {
		return "All Time"
	}
	t, err := time.Parse("2006-01", selected)
	if err != nil {
		return selected
	}
	return t.Format("January 2006")
}
