// Package metrics implementa el pipeline de agregación de métricas de
// negocio: pliega líneas de orden y citas concluidas en un Snapshot
// normalizado (KPIs, series mensuales/semanales, desglose de servicios).
//
// Todo el paquete es puro y síncrono: misma entrada, misma salida, sin tocar
// la base de datos. La orquestación (suscripciones, refetch, versionado) vive
// en internal/application/reports.
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
	"github.com/tu-usuario/petcare-pro/pkg/currency"
)

var hundred = decimal.NewFromInt(100)

// isCountedOrderStatus indica si una línea de orden cuenta para métricas:
// solo órdenes confirmadas o recibidas generan ingreso.
func isCountedOrderStatus(status string) bool {
	return status == entity.OrderStatusConfirmed || status == entity.OrderStatusReceived
}

// Aggregate pliega los registros crudos en un Result completo.
//
// Normalización (resiliencia sobre estrictez): líneas con estado no contable
// o sin timestamp se descartan (contribución cero), precios de cita sin
// dígitos parsean a 0, y citas sin fecha usable no pueden ubicarse en ningún
// bucket así que también se descartan. Nada aborta la agregación.
//
// customerCount es el conteo externo de usuarios registrados; el filtro de
// mes lo reemplaza por usuarios activos del mes (ver ApplyMonthFilter).
func Aggregate(orders []entity.OrderLine, appointments []entity.Appointment, customerCount int) *Result {
	orderGroups := make(map[string]*LogicalOrder)
	shopRevenue := decimal.Zero
	totalProducts := 0

	monthlyData := make(map[string]decimal.Decimal)
	weeklyData := make(map[string]decimal.Decimal)
	productMonthly := make(map[string]int)
	productWeekly := make(map[string]int)
	processedLines := make(map[string]struct{})
	months := make(map[string]struct{})

	// ── Órdenes: agrupación en órdenes lógicas + acumulación ──────────────────
	for _, line := range orders {
		if !isCountedOrderStatus(line.Status) {
			continue
		}
		if line.CreatedAt.IsZero() {
			continue
		}
		created := line.CreatedAt.UTC()
		months[YearMonthKey(created)] = struct{}{}

		monthKey := MonthKey(created)
		monthWeek := MonthWeekKey(created)
		lineTotal := line.Total()

		// Dedup por id de línea: cada línea física suma su cantidad una sola
		// vez aunque el feed la entregue repetida. Opera a nivel de línea, no
		// de orden lógica (asimetría preexistente que se conserva).
		if _, seen := processedLines[line.ID]; !seen {
			totalProducts += line.Quantity
			processedLines[line.ID] = struct{}{}
		}

		key := line.GroupKey()
		group, ok := orderGroups[key]
		if !ok {
			// La primera línea de la llave establece la orden lógica
			group = &LogicalOrder{
				OrderID:  key,
				UserID:   line.UserID,
				UserName: line.UserName,
				Date:     created,
				Total:    decimal.Zero,
			}
			orderGroups[key] = group
		}
		group.Items = append(group.Items, OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			Price:        line.UnitPrice,
			Quantity:     line.Quantity,
		})
		group.Total = group.Total.Add(lineTotal)

		shopRevenue = shopRevenue.Add(lineTotal)
		monthlyData[monthKey] = monthlyData[monthKey].Add(lineTotal)
		weeklyData[monthWeek] = weeklyData[monthWeek].Add(lineTotal)
		productMonthly[monthKey] += line.Quantity
		productWeekly[monthWeek] += line.Quantity
	}

	// ── Citas: ingreso de servicios + clasificación ───────────────────────────
	serviceMonthly := make(map[string]CategoryCounts)
	breakdownByMonth := make(map[string]CategoryCounts)
	globalCounts := make(CategoryCounts)
	serviceRevenue := decimal.Zero
	kept := make([]entity.Appointment, 0, len(appointments))

	for _, apt := range appointments {
		if apt.Status != entity.AppointmentStatusConcluded {
			continue
		}
		date, ok := apt.ServiceDate()
		if !ok {
			continue
		}
		kept = append(kept, apt)

		ym := YearMonthKey(date)
		months[ym] = struct{}{}
		monthKey := MonthKey(date)
		monthWeek := MonthWeekKey(date)

		price := currency.ParseLenientDecimal(apt.Price)
		serviceRevenue = serviceRevenue.Add(price)
		monthlyData[monthKey] = monthlyData[monthKey].Add(price)
		weeklyData[monthWeek] = weeklyData[monthWeek].Add(price)

		// El mes entra a las series de servicios aunque la cita no sea
		// clasificable: el ingreso cuenta, la categoría no.
		if serviceMonthly[monthKey] == nil {
			serviceMonthly[monthKey] = make(CategoryCounts)
		}
		if breakdownByMonth[ym] == nil {
			breakdownByMonth[ym] = make(CategoryCounts)
		}

		if category, ok := Classify(apt.Service); ok {
			globalCounts[category]++
			serviceMonthly[monthKey][category]++
			breakdownByMonth[ym][category]++
		}
	}

	// ── Series derivadas ──────────────────────────────────────────────────────
	monthlyRevenue := make([]MonthlyRevenuePoint, 0, len(monthlyData))
	for month, revenue := range monthlyData {
		monthlyRevenue = append(monthlyRevenue, MonthlyRevenuePoint{Month: month, Revenue: revenue})
	}
	sort.Slice(monthlyRevenue, func(i, j int) bool {
		return monthIndex(monthlyRevenue[i].Month) < monthIndex(monthlyRevenue[j].Month)
	})

	weeklyRevenue := make([]WeeklyRevenuePoint, 0, len(weeklyData))
	for monthWeek, revenue := range weeklyData {
		month, week := splitMonthWeek(monthWeek)
		weeklyRevenue = append(weeklyRevenue, WeeklyRevenuePoint{
			Month: month, Week: week, Revenue: revenue, DisplayName: monthWeek,
		})
	}
	sortWeekly(weeklyRevenue, func(p WeeklyRevenuePoint) (string, string) { return p.Month, p.Week })

	monthlyProducts := make([]MonthlyProductsPoint, 0, len(productMonthly))
	for month, qty := range productMonthly {
		monthlyProducts = append(monthlyProducts, MonthlyProductsPoint{Month: month, Products: qty})
	}
	sort.Slice(monthlyProducts, func(i, j int) bool {
		return monthIndex(monthlyProducts[i].Month) < monthIndex(monthlyProducts[j].Month)
	})

	weeklyProducts := make([]WeeklyProductsPoint, 0, len(productWeekly))
	for monthWeek, qty := range productWeekly {
		month, week := splitMonthWeek(monthWeek)
		weeklyProducts = append(weeklyProducts, WeeklyProductsPoint{
			Month: month, Week: week, Products: qty, DisplayName: monthWeek,
		})
	}
	sortWeekly(weeklyProducts, func(p WeeklyProductsPoint) (string, string) { return p.Month, p.Week })

	monthlyServices := make([]ServiceMonthPoint, 0, len(serviceMonthly))
	for month, counts := range serviceMonthly {
		monthlyServices = append(monthlyServices, ServiceMonthPoint{
			Month:        month,
			Consultation: counts[CategoryConsultation],
			Grooming:     counts[CategoryGrooming],
			DentalCare:   counts[CategoryDentalCare],
		})
	}
	sort.Slice(monthlyServices, func(i, j int) bool {
		return monthIndex(monthlyServices[i].Month) < monthIndex(monthlyServices[j].Month)
	})

	// Órdenes lógicas por fecha descendente; desempate por llave para que dos
	// pasadas sobre los mismos datos produzcan salidas idénticas.
	logicalOrders := make([]LogicalOrder, 0, len(orderGroups))
	for _, group := range orderGroups {
		logicalOrders = append(logicalOrders, *group)
	}
	sort.Slice(logicalOrders, func(i, j int) bool {
		if !logicalOrders[i].Date.Equal(logicalOrders[j].Date) {
			return logicalOrders[i].Date.After(logicalOrders[j].Date)
		}
		return logicalOrders[i].OrderID < logicalOrders[j].OrderID
	})

	availableMonths := make([]string, 0, len(months))
	for ym := range months {
		availableMonths = append(availableMonths, ym)
	}
	sort.Strings(availableMonths)

	return &Result{
		Snapshot: Snapshot{
			TotalRevenue:            shopRevenue.Add(serviceRevenue),
			ShopRevenue:             shopRevenue,
			ServiceRevenue:          serviceRevenue,
			TotalCustomers:          customerCount,
			TotalProducts:           totalProducts,
			MonthlyRevenue:          monthlyRevenue,
			WeeklyRevenue:           weeklyRevenue,
			MonthlyProducts:         monthlyProducts,
			WeeklyProducts:          weeklyProducts,
			MonthlyServices:         monthlyServices,
			ServiceBreakdown:        BreakdownFromCounts(globalCounts),
			ServiceBreakdownByMonth: breakdownByMonth,
		},
		Orders:          logicalOrders,
		Appointments:    kept,
		AvailableMonths: availableMonths,
	}
}

// BreakdownFromCounts convierte conteos por categoría en participaciones
// porcentuales redondeadas al entero más cercano. Las categorías con 0% se
// omiten de la salida (no se emiten con valor cero). Con total cero devuelve
// el slice vacío.
func BreakdownFromCounts(counts CategoryCounts) []BreakdownEntry {
	total := 0
	for _, category := range Categories {
		total += counts[category]
	}
	out := make([]BreakdownEntry, 0, len(Categories))
	if total == 0 {
		return out
	}
	for _, category := range Categories {
		pct := roundPercent(counts[category], total)
		if pct > 0 {
			out = append(out, BreakdownEntry{Name: category, Value: pct})
		}
	}
	return out
}

// roundPercent calcula round(part/total × 100) con redondeo half-away-from-zero.
func roundPercent(part, total int) int {
	return int(decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0).
		IntPart())
}

// splitMonthWeek separa la llave combinada "Mes-WeekN".
func splitMonthWeek(monthWeek string) (month, week string) {
	for i := 0; i < len(monthWeek); i++ {
		if monthWeek[i] == '-' {
			return monthWeek[:i], monthWeek[i+1:]
		}
	}
	return monthWeek, ""
}

// sortWeekly ordena una serie semanal por (mes calendario, semana).
func sortWeekly[T any](points []T, key func(T) (string, string)) {
	sort.Slice(points, func(i, j int) bool {
		mi, wi := key(points[i])
		mj, wj := key(points[j])
		if monthIndex(mi) != monthIndex(mj) {
			return monthIndex(mi) < monthIndex(mj)
		}
		return weekIndex(wi) < weekIndex(wj)
	})
}
