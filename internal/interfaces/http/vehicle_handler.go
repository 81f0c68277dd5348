package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/application/usecase"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// VehicleHandler maneja las peticiones HTTP de vehículos.
type VehicleHandler struct {
	uc  *usecase.VehicleUseCase
	env string
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase, env string) *VehicleHandler {
	return &VehicleHandler{uc: uc, env: env}
}

// createVehicleRequest alta de vehículo con propietario opcional.
type createVehicleRequest struct {
	dto.NuevoVehiculoInput
	CustomerID *string `json:"customer_id"`
}

// Create POST /api/vehicles
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in createVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	vehicle, err := h.uc.Create(c.UserContext(), in.NuevoVehiculoInput, in.CustomerID)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// GetByID GET /api/vehicles/:id
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	vehicle, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(vehicle)
}

// Search GET /api/vehicles?vin=&placa=&customer_id=&activos=true
func (h *VehicleHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	f := repository.VehicleFilter{
		VIN:         c.Query("vin"),
		Placa:       c.Query("placa"),
		CustomerID:  c.Query("customer_id"),
		SoloActivos: c.Query("activos", "true") == "true",
		Limit:       limit,
		Offset:      offset,
	}
	list, err := h.uc.Search(c.UserContext(), f)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}

// Update PATCH /api/vehicles/:id
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	var in dto.VehiclePatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	vehicle, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(vehicle)
}

// ChangePlate POST /api/vehicles/:id/plate-change
func (h *VehicleHandler) ChangePlate(c *fiber.Ctx) error {
	var in dto.ChangePlateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	vehicle, err := h.uc.ChangePlate(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(vehicle)
}

// PlateHistory GET /api/vehicles/:id/plate-history
func (h *VehicleHandler) PlateHistory(c *fiber.Ctx) error {
	history, err := h.uc.PlateHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(history)
}

// Deactivate DELETE /api/vehicles/:id (baja lógica, libera la placa)
func (h *VehicleHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.env, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
