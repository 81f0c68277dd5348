package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/application/usecase"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// ServiceHandler maneja las peticiones HTTP de órdenes de servicio.
type ServiceHandler struct {
	uc  *usecase.ServiceUseCase
	env string
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *usecase.ServiceUseCase, env string) *ServiceHandler {
	return &ServiceHandler{uc: uc, env: env}
}

// GetByID GET /api/services/:id
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	service, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(service)
}

// List GET /api/services?estado=&customer_id=&vehicle_id=&fecha=
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	f := repository.ServiceFilter{
		Estado:     c.Query("estado"),
		CustomerID: c.Query("customer_id"),
		VehicleID:  c.Query("vehicle_id"),
		Limit:      limit,
		Offset:     offset,
	}
	if q := c.Query("fecha"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return respondValidation(c, []dto.FieldError{{Field: "fecha", Message: "fecha requerida en formato YYYY-MM-DD"}})
		}
		f.Fecha = &parsed
	}
	list, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}

// UpdateEstado PATCH /api/services/:id/estado
// Aplica una transición validada; una transición ilegal responde 409.
func (h *ServiceHandler) UpdateEstado(c *fiber.Ctx) error {
	var in dto.UpdateServiceEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	service, err := h.uc.UpdateEstado(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(service)
}

// OrderPDF GET /api/services/:id/pdf
// Devuelve la orden de servicio imprimible.
func (h *ServiceHandler) OrderPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.OrderPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-servicio.pdf"`)
	return c.Send(pdfBytes)
}
