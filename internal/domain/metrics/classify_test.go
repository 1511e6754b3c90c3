package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
)

func TestClassify_CategoriasBasicas(t *testing.T) {
	cases := []struct {
		service string
		want    metrics.Category
	}{
		{"Consultation", metrics.CategoryConsultation},
		{"Pet Grooming (full package)", metrics.CategoryGrooming},
		{"Dental Cleaning", metrics.CategoryDentalCare},
		{"dental checkup", metrics.CategoryDentalCare},
		{"GROOMING deluxe", metrics.CategoryGrooming},
	}
	for _, tc := range cases {
		got, ok := metrics.Classify(tc.service)
		assert.True(t, ok, "debe clasificar %q", tc.service)
		assert.Equal(t, tc.want, got, "servicio %q", tc.service)
	}
}

// TestClassify_Precedencia verifica que las reglas se evalúan en orden y gana
// la primera: una etiqueta que menciona consulta y dental es Consultation.
func TestClassify_Precedencia(t *testing.T) {
	got, ok := metrics.Classify("Dental Consultation")
	assert.True(t, ok)
	assert.Equal(t, metrics.CategoryConsultation, got)

	got, ok = metrics.Classify("Grooming + dental rinse")
	assert.True(t, ok)
	assert.Equal(t, metrics.CategoryGrooming, got)
}

func TestClassify_SinCategoria(t *testing.T) {
	_, ok := metrics.Classify("Vaccination")
	assert.False(t, ok, "un servicio sin keyword conocida queda sin categoría")

	_, ok = metrics.Classify("")
	assert.False(t, ok)
}
