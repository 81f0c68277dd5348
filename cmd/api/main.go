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
	"github.com/henry-diagnostics/taller-api/internal/application/auth"
	"github.com/henry-diagnostics/taller-api/internal/application/reception"
	"github.com/henry-diagnostics/taller-api/internal/application/usecase"
	infrapdf "github.com/henry-diagnostics/taller-api/internal/infrastructure/pdf"
	"github.com/henry-diagnostics/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/henry-diagnostics/taller-api/internal/interfaces/http"
	"github.com/henry-diagnostics/taller-api/pkg/config"
	"github.com/henry-diagnostics/taller-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	oppRepo := postgres.NewOpportunityRepository(pool)
	noteRepo := postgres.NewOpportunityNoteRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	mechanicRepo := postgres.NewMechanicRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Flujo de mostrador: walk-ins, citas y conversión a servicio
	receptionUC := reception.NewUseCase(txRunner, serviceRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	customerUC := usecase.NewCustomerUseCase(customerRepo, vehicleRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, txRunner)
	opportunityUC := usecase.NewOpportunityUseCase(oppRepo, noteRepo)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, pdfGenerator)
	mechanicUC := usecase.NewMechanicUseCase(mechanicRepo, branchRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Henry Diagnostics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReceptionUC:   receptionUC,
		CustomerUC:    customerUC,
		VehicleUC:     vehicleUC,
		OpportunityUC: opportunityUC,
		ServiceUC:     serviceUC,
		MechanicUC:    mechanicUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
		Env:           cfg.App.Env,
		Log:           log,
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
