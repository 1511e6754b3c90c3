package entity

import (
	"strconv"
	"time"
)

// Estados del ciclo de vida de una cita.
// Solo las citas Concluded (servicio ya prestado) cuentan para ingresos.
const (
	AppointmentStatusPending   = "Pending"
	AppointmentStatusConfirmed = "Confirmed"
	AppointmentStatusConcluded = "Concluded"
	AppointmentStatusCancelled = "Cancelled"
)

// Appointment representa una cita de servicio para una mascota.
//
// Price se guarda como texto con símbolo de moneda (ej. "₱850") tal como lo
// capturó el formulario de reserva; el parseo es responsabilidad de
// pkg/currency. Date es la fecha calendario "YYYY-MM-DD" del servicio.
type Appointment struct {
	ID          string
	UserID      string
	UserName    string
	PetName     string
	Service     string // etiqueta libre, ej. "Pet Grooming (full)"
	Price       string
	Date        string
	Status      string
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// ServiceDate parsea la fecha calendario de la cita. ok=false si el campo
// está vacío o malformado; en ese caso la cita no puede ubicarse en ningún
// bucket mensual/semanal.
func (a Appointment) ServiceDate() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", a.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CanTransitionAppointment indica si el cambio de estado from → to es válido.
// Concluded y Cancelled son terminales; una cita puede cancelarse mientras
// el servicio no se haya prestado.
func CanTransitionAppointment(from, to string) bool {
	switch from {
	case AppointmentStatusPending:
		return to == AppointmentStatusConfirmed || to == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return to == AppointmentStatusConcluded || to == AppointmentStatusCancelled
	default:
		return false
	}
}

// epochMillisString formatea un instante como milisegundos epoch (texto).
// Compartido por las llaves de agrupación de órdenes.
func epochMillisString(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
