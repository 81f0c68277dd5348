package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/application/usecase"
)

// MechanicHandler maneja las peticiones HTTP de mecánicos.
type MechanicHandler struct {
	uc  *usecase.MechanicUseCase
	env string
}

// NewMechanicHandler construye el handler.
func NewMechanicHandler(uc *usecase.MechanicUseCase, env string) *MechanicHandler {
	return &MechanicHandler{uc: uc, env: env}
}

// Create POST /api/mechanics (solo admin)
func (h *MechanicHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMechanicRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mechanic, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mechanic)
}

// List GET /api/mechanics?activos=true
func (h *MechanicHandler) List(c *fiber.Ctx) error {
	soloActivos := c.Query("activos", "true") == "true"
	list, err := h.uc.List(c.UserContext(), soloActivos)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}

// ListBranches GET /api/branches
func (h *MechanicHandler) ListBranches(c *fiber.Ctx) error {
	list, err := h.uc.ListBranches(c.UserContext())
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}
