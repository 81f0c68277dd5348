package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/application/usecase"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// OpportunityHandler maneja las peticiones HTTP de oportunidades, citas
// rápidas y notas de seguimiento.
type OpportunityHandler struct {
	uc  *usecase.OpportunityUseCase
	env string
}

// NewOpportunityHandler construye el handler.
func NewOpportunityHandler(uc *usecase.OpportunityUseCase, env string) *OpportunityHandler {
	return &OpportunityHandler{uc: uc, env: env}
}

// Create POST /api/opportunities
func (h *OpportunityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	opp, err := h.uc.Create(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(opp)
}

// CreateAppointment POST /api/appointments
// Cita rápida: crea la oportunidad ya agendada en un paso.
func (h *OpportunityHandler) CreateAppointment(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	opp, err := h.uc.CreateAppointment(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(opp)
}

// GetByID GET /api/opportunities/:id
func (h *OpportunityHandler) GetByID(c *fiber.Ctx) error {
	opp, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(opp)
}

// List GET /api/opportunities?estado=&prioridad=&con_cita=&fecha=
func (h *OpportunityHandler) List(c *fiber.Ctx) error {
	f, err := parseOpportunityFilter(c)
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "fecha", Message: "fecha requerida en formato YYYY-MM-DD"}})
	}
	list, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}

// Agenda GET /api/appointments?fecha=YYYY-MM-DD
// Citas agendadas para el día indicado (hoy si se omite).
func (h *OpportunityHandler) Agenda(c *fiber.Ctx) error {
	fecha := time.Now()
	if q := c.Query("fecha"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return respondValidation(c, []dto.FieldError{{Field: "fecha", Message: "fecha requerida en formato YYYY-MM-DD"}})
		}
		fecha = parsed
	}
	list, err := h.uc.Agenda(c.UserContext(), fecha)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}

// Update PATCH /api/opportunities/:id
func (h *OpportunityHandler) Update(c *fiber.Ctx) error {
	var in dto.OpportunityPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	opp, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(opp)
}

// AddNote POST /api/opportunities/:id/notes
func (h *OpportunityHandler) AddNote(c *fiber.Ctx) error {
	var in dto.AddNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	note, err := h.uc.AddNote(c.UserContext(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// ListNotes GET /api/opportunities/:id/notes
func (h *OpportunityHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.uc.ListNotes(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(notes)
}

func parseOpportunityFilter(c *fiber.Ctx) (repository.OpportunityFilter, error) {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	f := repository.OpportunityFilter{
		Estado:    c.Query("estado"),
		Prioridad: c.Query("prioridad"),
		Limit:     limit,
		Offset:    offset,
	}
	if q := c.Query("con_cita"); q != "" {
		v := q == "true"
		f.ConCita = &v
	}
	if q := c.Query("fecha"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return f, err
		}
		f.CitaFecha = &parsed
	}
	return f, nil
}
