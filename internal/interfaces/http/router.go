package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/petcare-pro/internal/application/auth"
	"github.com/tu-usuario/petcare-pro/internal/application/booking"
	"github.com/tu-usuario/petcare-pro/internal/application/catalog"
	"github.com/tu-usuario/petcare-pro/internal/application/orders"
	"github.com/tu-usuario/petcare-pro/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CatalogUC  *catalog.UseCase
	BookingUC  *booking.UseCase
	OrdersUC   *orders.UseCase
	ReportsSvc *reports.Service
	ExportUC   *reports.ExportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo: lectura pública, escritura staff
	productHandler := NewProductHandler(deps.CatalogUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	productsAdmin := protected.Group("/products", RequireAdmin())
	productsAdmin.Post("/", productHandler.Create)
	productsAdmin.Put("/:id", productHandler.Update)
	productsAdmin.Delete("/:id", productHandler.Delete)

	// Citas (protegido; transiciones solo staff)
	appointments := protected.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.BookingUC)
	appointments.Post("/", appointmentHandler.Book)
	appointments.Get("/", appointmentHandler.List)
	appointments.Delete("/:id", appointmentHandler.Cancel)
	appointments.Put("/:id/status", RequireAdmin(), appointmentHandler.UpdateStatus)

	// Órdenes (protegido; transiciones y borrado solo staff)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordersGroup.Post("/checkout", orderHandler.Checkout)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Delete("/:id", orderHandler.Cancel)
	ordersGroup.Put("/:id/status", RequireAdmin(), orderHandler.UpdateStatus)
	ordersGroup.Delete("/:id/force", RequireAdmin(), orderHandler.Delete)

	// Reportes de negocio (solo staff)
	reportsGroup := protected.Group("/reports", RequireAdmin())
	reportsHandler := NewReportsHandler(deps.ReportsSvc, deps.ExportUC)
	reportsGroup.Get("/metrics", reportsHandler.Metrics)
	reportsGroup.Get("/months", reportsHandler.Months)
	reportsGroup.Post("/month", reportsHandler.SelectMonth)
	reportsGroup.Get("/orders", reportsHandler.Orders)
	reportsGroup.Get("/export", reportsHandler.Export)
}
