package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc  *usecase.CustomerUseCase
	env string
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, env string) *CustomerHandler {
	return &CustomerHandler{uc: uc, env: env}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.NuevoClienteInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	customer, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(customer)
}

// Search GET /api/customers?nombre=&telefono=&limit=20&offset=0
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.Search(c.UserContext(), c.Query("nombre"), c.Query("telefono"), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}

// Update PATCH /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	customer, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id
// Rechaza con 409 si el cliente tiene vehículos activos.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.env, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
