package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/petcare-pro/internal/application/auth"
	"github.com/tu-usuario/petcare-pro/internal/application/booking"
	"github.com/tu-usuario/petcare-pro/internal/application/catalog"
	"github.com/tu-usuario/petcare-pro/internal/application/orders"
	"github.com/tu-usuario/petcare-pro/internal/application/reports"
	"github.com/tu-usuario/petcare-pro/internal/infrastructure/notify"
	infrapdf "github.com/tu-usuario/petcare-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/petcare-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/petcare-pro/internal/interfaces/http"
	"github.com/tu-usuario/petcare-pro/pkg/config"
	"github.com/tu-usuario/petcare-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool, log)
	appointmentRepo := postgres.NewAppointmentRepository(pool, log)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(productRepo)
	bookingUC := booking.NewUseCase(appointmentRepo)
	ordersUC := orders.NewUseCase(orderRepo, productRepo)

	// Pipeline de métricas: suscripción a cambios + recálculo con debounce
	notifier := notify.NewLogNotifier(log)
	reportsSvc := reports.NewService(
		orderRepo, appointmentRepo, userRepo, notifier, log,
		time.Duration(cfg.Metrics.DebounceMillis)*time.Millisecond,
	)
	go func() {
		if err := reportsSvc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("pipeline de métricas finalizado")
		}
	}()

	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	exportUC := reports.NewExportUseCase(reportsSvc, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PetCare Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		BookingUC:  bookingUC,
		OrdersUC:   ordersUC,
		ReportsSvc: reportsSvc,
		ExportUC:   exportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop() // detiene el pipeline de métricas y las conexiones LISTEN

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
