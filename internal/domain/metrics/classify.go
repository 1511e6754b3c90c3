package metrics

import "strings"

// Category es una de las tres categorías fijas de servicio del negocio.
type Category string

// Categorías de servicio. El orden de este slice es también el orden de
// evaluación de las reglas y el orden de salida del desglose porcentual.
const (
	CategoryConsultation Category = "Consultation"
	CategoryGrooming     Category = "Grooming"
	CategoryDentalCare   Category = "Dental Care"
)

// Categories en orden canónico.
var Categories = []Category{CategoryConsultation, CategoryGrooming, CategoryDentalCare}

// classificationRule asocia un predicado sobre la etiqueta libre del servicio
// con su categoría. Las reglas se evalúan en orden y gana la primera que
// matchea, de modo que la precedencia queda explícita y testeable.
type classificationRule struct {
	keyword  string
	category Category
}

var classificationRules = []classificationRule{
	{"consultation", CategoryConsultation},
	{"grooming", CategoryGrooming},
	{"dental", CategoryDentalCare},
}

// Classify clasifica la etiqueta libre de un servicio en una categoría fija
// por substring case-insensitive. ok=false si ninguna regla matchea; esas
// citas quedan fuera del desglose porcentual pero su precio sí cuenta en los
// ingresos totales.
func Classify(service string) (Category, bool) {
	if service == "" {
		return "", false
	}
	lower := strings.ToLower(service)
	for _, rule := range classificationRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category, true
		}
	}
	return "", false
}
