package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/application/reception"
	"github.com/henry-diagnostics/taller-api/pkg/logger"
)

// ReceptionHandler maneja el flujo de mostrador: walk-ins, conversión de
// oportunidades a cita y llegada de clientes citados.
type ReceptionHandler struct {
	uc  *reception.UseCase
	log *logger.Logger
	env string
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(uc *reception.UseCase, log *logger.Logger, env string) *ReceptionHandler {
	return &ReceptionHandler{uc: uc, log: log.Component("reception"), env: env}
}

// WalkIn godoc
// @Summary      Registrar cliente walk-in
// @Description  Resuelve o crea cliente y vehículo y abre servicio inmediato o agenda cita, todo en una transacción
// @Tags         reception
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WalkInRequest  true  "cliente, vehículo y acción"
// @Success      201   {object}  dto.WalkInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reception/walk-in [post]
func (h *ReceptionHandler) WalkIn(c *fiber.Ctx) error {
	var in dto.WalkInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	out, err := h.uc.ProcessWalkIn(c.UserContext(), in)
	if err != nil {
		h.log.Warn().Err(err).Str("accion", in.Accion).Msg("walk-in rechazado")
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConvertToCita godoc
// @Summary      Agendar cita sobre una oportunidad
// @Tags         reception
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertToCitaRequest  true  "oportunidad, fecha y hora"
// @Success      200   {object}  dto.OpportunityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reception/convert-opportunity [post]
func (h *ReceptionHandler) ConvertToCita(c *fiber.Ctx) error {
	var in dto.ConvertToCitaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	out, err := h.uc.ConvertToCita(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}

// Recepcionar godoc
// @Summary      Recepcionar cliente citado
// @Description  Abre la orden de servicio heredando los datos sugeridos en la oportunidad
// @Tags         reception
// @Accept       json
// @Produce      json
// @Param        opportunity_id  path  string  true  "id de la oportunidad agendada"
// @Param        body  body  dto.RecepcionarRequest  true  "overrides opcionales"
// @Success      201   {object}  dto.RecepcionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reception/recepcionar/{opportunity_id} [post]
func (h *ReceptionHandler) Recepcionar(c *fiber.Ctx) error {
	opportunityID := c.Params("opportunity_id")
	var in dto.RecepcionarRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Recepcionar(c.UserContext(), opportunityID, in)
	if err != nil {
		h.log.Warn().Err(err).Str("opportunity_id", opportunityID).Msg("recepción rechazada")
		return respondError(c, h.env, err)
	}
	h.log.Info().Str("opportunity_id", opportunityID).Str("service_id", out.Service.ID).Msg("cliente recepcionado")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConvertToService godoc
// @Summary      Convertir cita agendada en servicio
// @Description  Crea la orden y marca la oportunidad como convertida; una oportunidad solo puede convertirse una vez
// @Tags         reception
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la oportunidad"
// @Param        body  body  dto.ConvertToServiceRequest  true  "servicio y cliente/vehículo"
// @Success      200   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/opportunities/{id}/convert-to-service [post]
func (h *ReceptionHandler) ConvertToService(c *fiber.Ctx) error {
	opportunityID := c.Params("id")
	var in dto.ConvertToServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := in.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	out, err := h.uc.ConvertToService(c.UserContext(), opportunityID, in)
	if err != nil {
		h.log.Warn().Err(err).Str("opportunity_id", opportunityID).Msg("conversión a servicio rechazada")
		return respondError(c, h.env, err)
	}
	h.log.Info().Str("opportunity_id", opportunityID).Str("service_id", out.ID).Msg("oportunidad convertida a servicio")
	return c.JSON(out)
}
