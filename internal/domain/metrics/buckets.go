package metrics

import "time"

// Llaves de bucket para las series mensuales y semanales de los charts.
//
// Las series mensuales usan la abreviatura fija de tres letras del mes SIN
// componente de año: datos de varios años se intercalan por nombre de mes.
// Es una limitación conocida del modelo de charts que se conserva tal cual;
// cambiarla a orden cronológico con año rompería las vistas existentes.

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var weekNames = [4]string{"Week1", "Week2", "Week3", "Week4"}

// MonthKey devuelve la abreviatura del mes calendario ("Jan".."Dec").
func MonthKey(t time.Time) string {
	return monthNames[t.Month()-1]
}

// WeekOfMonth devuelve la semana fija del mes: días 1–7 Week1, 8–14 Week2,
// 15–21 Week3 y 22 en adelante Week4 (sin importar la longitud del mes).
func WeekOfMonth(t time.Time) string {
	day := t.Day()
	switch {
	case day <= 7:
		return weekNames[0]
	case day <= 14:
		return weekNames[1]
	case day <= 21:
		return weekNames[2]
	default:
		return weekNames[3]
	}
}

// MonthWeekKey devuelve la llave combinada "Mes-WeekN" de las series semanales.
func MonthWeekKey(t time.Time) string {
	return MonthKey(t) + "-" + WeekOfMonth(t)
}

// YearMonthKey devuelve la llave ISO "YYYY-MM" usada por el filtro de mes.
// El orden lexicográfico de estas llaves coincide con el cronológico.
func YearMonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// monthIndex devuelve la posición 0..11 del mes abreviado, o -1 si no existe.
func monthIndex(month string) int {
	for i, m := range monthNames {
		if m == month {
			return i
		}
	}
	return -1
}

// weekIndex devuelve la posición 0..3 de la semana, o -1 si no existe.
func weekIndex(week string) int {
	for i, w := range weekNames {
		if w == week {
			return i
		}
	}
	return -1
}
