package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Taller-api/docs"
	"github.com/jhoicas/Taller-api/internal/application/billing"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// @title        Taller API
// @version      1.0
// @description  Gestión de taller: clientes, vehículos, intervenciones, pedidos y facturas.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	technicianRepo := postgres.NewTechnicianRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	interventionRepo := postgres.NewInterventionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	collector := metrics.New()
	auditor := usecase.NewAuditor(auditRepo, log)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)

	interventionSvc := workshop.NewInterventionService(
		interventionRepo, vehicleRepo, technicianRepo, catalogUC, txRunner, collector, cfg.App.PageSize,
	)
	orderSvc := workshop.NewOrderService(interventionRepo, orderRepo, txRunner, collector)
	invoiceUC := billing.NewInvoiceUseCase(
		invoiceRepo, interventionRepo, orderRepo, vehicleRepo, clientRepo, txRunner, auditor, collector,
		billing.Options{
			DefaultTVARate:  cfg.Billing.DefaultTVARate,
			InvoicePrefix:   cfg.Billing.InvoicePrefix,
			CurrencyWord:    cfg.Billing.CurrencyWord,
			IsPaymentMethod: cfg.Billing.HasPaymentMethod,
		},
	)
	printUC := billing.NewPrintUseCase(invoiceRepo, clientRepo, interventionRepo, settingsRepo, cfg.Billing.CurrencyWord, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(collector.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			log.Warn().Err(err).Msg("health: base de datos no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", collector.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:      usecase.NewClientUseCase(clientRepo, vehicleRepo, interventionRepo, invoiceRepo, txRunner, auditor),
		VehicleUC:     usecase.NewVehicleUseCase(vehicleRepo, clientRepo, auditor),
		TechnicianUC:  usecase.NewTechnicianUseCase(technicianRepo, auditor),
		CatalogUC:     catalogUC,
		SettingsUC:    usecase.NewSettingsUseCase(settingsRepo, auditor),
		Interventions: interventionSvc,
		Orders:        orderSvc,
		InvoiceUC:     invoiceUC,
		PrintUC:       printUC,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
