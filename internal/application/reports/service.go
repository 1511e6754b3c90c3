// Package reports orquesta el pipeline de métricas de negocio: mantiene el
// Result vigente, lo recalcula cuando cambian los feeds de órdenes o citas y
// expone las vistas filtradas por mes que consumen el dashboard y el exporte.
package reports

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
	"github.com/tu-usuario/petcare-pro/internal/domain/repository"
	"github.com/tu-usuario/petcare-pro/pkg/logger"
)

// countedOrderStatuses estados de línea que alimentan el agregador.
var countedOrderStatuses = []string{entity.OrderStatusConfirmed, entity.OrderStatusReceived}

// Service contenedor de estado de métricas con un único punto de entrada de
// recálculo.
//
// Cada recálculo lleva un id monotónico; un resultado que llega después de
// otro más nuevo se descarta en lugar de pisar el estado (guard contra el
// race de fetches obsoletos). Los dos feeds disparan un solo recálculo por
// ráfaga gracias al debounce de Run.
type Service struct {
	orderRepo repository.OrderRepository
	aptRepo   repository.AppointmentRepository
	userRepo  repository.UserRepository
	notifier  Notifier
	log       *logger.Logger
	debounce  time.Duration
	now       func() time.Time

	seq atomic.Uint64 // id del próximo recálculo

	mu         sync.RWMutex
	applied    uint64 // id del último recálculo aplicado
	result     *metrics.Result
	selected   string
	userPinned bool // true cuando el usuario eligió mes explícitamente
}

// NewService construye el contenedor de métricas.
func NewService(
	orderRepo repository.OrderRepository,
	aptRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	log *logger.Logger,
	debounce time.Duration,
) *Service {
	return &Service{
		orderRepo: orderRepo,
		aptRepo:   aptRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		log:       log,
		debounce:  debounce,
		now:       time.Now,
		selected:  metrics.AllMonths,
	}
}

// Run suscribe ambos feeds y recalcula ante cada cambio, agrupando ráfagas en
// la ventana de debounce. Bloquea hasta que ctx termine.
func (s *Service) Run(ctx context.Context) error {
	ordersCh, err := s.orderRepo.Watch(ctx)
	if err != nil {
		return fmt.Errorf("reports: suscribir órdenes: %w", err)
	}
	aptsCh, err := s.aptRepo.Watch(ctx)
	if err != nil {
		return fmt.Errorf("reports: suscribir citas: %w", err)
	}

	// Primera pasada inmediata para tener snapshot desde el arranque
	if err := s.Recompute(ctx); err != nil {
		s.log.Warn().Err(err).Msg("recálculo inicial de métricas falló; se reintenta con el próximo cambio")
	}

	var timerC <-chan time.Time
	schedule := func() {
		if timerC == nil {
			timerC = time.After(s.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case _, ok := <-ordersCh:
			if !ok {
				ordersCh = nil
				if aptsCh == nil {
					return nil
				}
				continue
			}
			schedule()

		case _, ok := <-aptsCh:
			if !ok {
				aptsCh = nil
				if ordersCh == nil {
					return nil
				}
				continue
			}
			schedule()

		case <-timerC:
			timerC = nil
			if err := s.Recompute(ctx); err != nil {
				s.log.Warn().Err(err).Msg("recálculo de métricas falló; se conserva el snapshot anterior")
			}
		}
	}
}

// Recompute hace una pasada completa: fetch de ambos feeds + conteo de
// usuarios en paralelo, agregación pura y aplicación versionada del resultado.
// Ante cualquier fallo de fetch notifica y deja intacto el último snapshot
// bueno (nunca lo pisa con datos parciales).
func (s *Service) Recompute(ctx context.Context) error {
	id := s.seq.Add(1)

	type ordersResult struct {
		lines []entity.OrderLine
		err   error
	}
	type aptsResult struct {
		appointments []entity.Appointment
		err          error
	}
	type countResult struct {
		count int
		err   error
	}

	ordersC := make(chan ordersResult, 1)
	aptsC := make(chan aptsResult, 1)
	countC := make(chan countResult, 1)

	go func() {
		lines, err := s.orderRepo.ListByStatuses(ctx, countedOrderStatuses)
		ordersC <- ordersResult{lines, err}
	}()
	go func() {
		appointments, err := s.aptRepo.ListByStatus(ctx, entity.AppointmentStatusConcluded)
		aptsC <- aptsResult{appointments, err}
	}()
	go func() {
		count, err := s.userRepo.CountAll(ctx)
		countC <- countResult{count, err}
	}()

	orders := <-ordersC
	appointments := <-aptsC
	customers := <-countC

	if orders.err != nil {
		s.notifier.Error(ctx, "No se pudieron cargar las órdenes del reporte", orders.err)
		return fmt.Errorf("reports: fetch de órdenes: %w", orders.err)
	}
	if appointments.err != nil {
		s.notifier.Error(ctx, "No se pudieron cargar las citas del reporte", appointments.err)
		return fmt.Errorf("reports: fetch de citas: %w", appointments.err)
	}
	if customers.err != nil {
		s.notifier.Error(ctx, "No se pudo contar los clientes", customers.err)
		return fmt.Errorf("reports: conteo de usuarios: %w", customers.err)
	}

	result := metrics.Aggregate(orders.lines, appointments.appointments, customers.count)
	s.apply(id, result)
	return nil
}

// apply publica un resultado si sigue siendo el más nuevo; los obsoletos se
// descartan silenciosamente.
func (s *Service) apply(id uint64, result *metrics.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id <= s.applied {
		s.log.Debug().
			Uint64("id", id).
			Uint64("applied", s.applied).
			Msg("recálculo obsoleto descartado")
		return
	}
	s.applied = id
	s.result = result

	// Mientras el usuario no haya fijado un mes, la selección sigue la regla
	// inicial: mes actual si tiene datos, si no "all".
	if !s.userPinned {
		s.selected = metrics.InitialSelection(result.AvailableMonths, s.now())
	}

	s.log.Info().
		Uint64("id", id).
		Str("total_revenue", result.Snapshot.TotalRevenue.String()).
		Int("orders", len(result.Orders)).
		Int("appointments", len(result.Appointments)).
		Int("months", len(result.AvailableMonths)).
		Msg("métricas de negocio recalculadas")
}

// SelectMonth fija el filtro de mes: el centinela "all" o un "YYYY-MM"
// parseable (un mes sin datos es válido y produce totales en cero).
func (s *Service) SelectMonth(month string) error {
	if month != metrics.AllMonths {
		if _, err := time.Parse("2006-01", month); err != nil {
			return domain.ErrInvalidInput
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = month
	s.userPinned = true
	return nil
}

// SelectedMonth devuelve la selección vigente.
func (s *Service) SelectedMonth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// AvailableMonths devuelve las llaves "YYYY-MM" con datos, ascendente.
func (s *Service) AvailableMonths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	return s.result.AvailableMonths
}

// Filtered devuelve el snapshot con el filtro vigente aplicado, más la
// selección. ok=false si aún no hay un recálculo aplicado.
func (s *Service) Filtered() (snap metrics.Snapshot, selected string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return metrics.Snapshot{}, s.selected, false
	}
	return metrics.ApplyMonthFilter(s.result, s.selected), s.selected, true
}

// FilteredBy devuelve el snapshot filtrado por un mes puntual sin tocar la
// selección vigente (consulta ad-hoc del dashboard).
func (s *Service) FilteredBy(month string) (metrics.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return metrics.Snapshot{}, false
	}
	return metrics.ApplyMonthFilter(s.result, month), true
}

// Orders devuelve las órdenes lógicas del último recálculo, opcionalmente
// filtradas por la selección de mes vigente.
func (s *Service) Orders(filtered bool) []metrics.LogicalOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	if !filtered || s.selected == metrics.AllMonths {
		return s.result.Orders
	}
	target, err := time.Parse("2006-01", s.selected)
	if err != nil {
		return nil
	}
	out := make([]metrics.LogicalOrder, 0, len(s.result.Orders))
	for _, order := range s.result.Orders {
		d := order.Date.UTC()
		if d.Year() == target.Year() && d.Month() == target.Month() {
			out = append(out, order)
		}
	}
	return out
}
