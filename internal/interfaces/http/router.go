package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/auth"
	"github.com/henry-diagnostics/taller-api/internal/application/reception"
	"github.com/henry-diagnostics/taller-api/internal/application/usecase"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReceptionUC   *reception.UseCase
	CustomerUC    *usecase.CustomerUseCase
	VehicleUC     *usecase.VehicleUseCase
	OpportunityUC *usecase.OpportunityUseCase
	ServiceUC     *usecase.ServiceUseCase
	MechanicUC    *usecase.MechanicUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
	Env           string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Env)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleAsesor)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)

	// Reception: flujo de mostrador (protegido, staff)
	receptionHandler := NewReceptionHandler(deps.ReceptionUC, deps.Log, deps.Env)
	recep := protected.Group("/reception", staff)
	recep.Post("/walk-in", receptionHandler.WalkIn)
	recep.Post("/convert-opportunity", receptionHandler.ConvertToCita)
	recep.Post("/recepcionar/:opportunity_id", receptionHandler.Recepcionar)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Env)
	customers.Post("/", staff, customerHandler.Create)
	customers.Get("/", customerHandler.Search)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Patch("/:id", staff, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC, deps.Env)
	vehicles.Post("/", staff, vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.Search)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Patch("/:id", staff, vehicleHandler.Update)
	vehicles.Post("/:id/plate-change", staff, vehicleHandler.ChangePlate)
	vehicles.Get("/:id/plate-history", vehicleHandler.PlateHistory)
	vehicles.Delete("/:id", adminOnly, vehicleHandler.Deactivate)

	// Opportunities y citas (protegido)
	opps := protected.Group("/opportunities")
	oppHandler := NewOpportunityHandler(deps.OpportunityUC, deps.Env)
	opps.Post("/", staff, oppHandler.Create)
	opps.Get("/", oppHandler.List)
	opps.Get("/:id", oppHandler.GetByID)
	opps.Patch("/:id", staff, oppHandler.Update)
	opps.Post("/:id/notes", staff, oppHandler.AddNote)
	opps.Get("/:id/notes", oppHandler.ListNotes)
	opps.Post("/:id/convert-to-service", staff, receptionHandler.ConvertToService)

	appointments := protected.Group("/appointments")
	appointments.Post("/", staff, oppHandler.CreateAppointment)
	appointments.Get("/", oppHandler.Agenda)

	// Services (protegido)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC, deps.Env)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Patch("/:id/estado", serviceHandler.UpdateEstado)
	services.Get("/:id/pdf", serviceHandler.OrderPDF)

	// Mechanics (protegido)
	mechanics := protected.Group("/mechanics")
	mechanicHandler := NewMechanicHandler(deps.MechanicUC, deps.Env)
	mechanics.Post("/", adminOnly, mechanicHandler.Create)
	mechanics.Get("/", mechanicHandler.List)
	protected.Get("/branches", mechanicHandler.ListBranches)
}
