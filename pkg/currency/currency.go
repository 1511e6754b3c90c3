// Package currency implementa el parseo tolerante de precios escritos como
// texto ("₱850", "1,200.00", "PHP 500"). Los registros históricos de citas
// guardan el precio con símbolo de moneda y separadores, así que el parser
// descarta todo lo que no sea dígito y concatena el resto.
//
// Limitación documentada: "₱1,200.50" se interpreta como 120050. El
// comportamiento se conserva a propósito; un parser estricto cambiaría los
// totales históricos y debe introducirse como migración explícita.
package currency

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ParseLenient extrae los dígitos de s y los interpreta como un entero.
// Un string sin dígitos (o vacío) parsea a 0, nunca a error.
func ParseLenient(s string) int64 {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		// overflow: el precio no cabe en int64, degradar a 0 igual que un campo ilegible
		return 0
	}
	return n
}

// ParseLenientDecimal es ParseLenient expresado como decimal, para sumarlo
// directamente con montos de órdenes.
func ParseLenientDecimal(s string) decimal.Decimal {
	return decimal.NewFromInt(ParseLenient(s))
}

// FormatPHP formatea un monto como pesos filipinos para exportes y reportes.
func FormatPHP(d decimal.Decimal) string {
	return "₱" + d.StringFixed(2)
}
