package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// CreateOpportunityRequest alta de oportunidad (prospecto de seguimiento).
type CreateOpportunityRequest struct {
	VehicleID        *string          `json:"vehicle_id"`
	CustomerID       *string          `json:"customer_id"`
	BranchID         *string          `json:"branch_id"`
	Prioridad        string           `json:"prioridad"`
	ServicioSugerido *string          `json:"servicio_sugerido"`
	Descripcion      *string          `json:"descripcion"`
	PrecioEstimado   *decimal.Decimal `json:"precio_estimado"`
}

// OpportunityPatchRequest actualización parcial.
type OpportunityPatchRequest struct {
	Estado           *string          `json:"estado"`
	Prioridad        *string          `json:"prioridad"`
	ServicioSugerido *string          `json:"servicio_sugerido"`
	Descripcion      *string          `json:"descripcion"`
	PrecioEstimado   *decimal.Decimal `json:"precio_estimado"`
	VehicleID        *string          `json:"vehicle_id"`
	CustomerID       *string          `json:"customer_id"`
}

// CreateAppointmentRequest cita rápida: existe antes de conocer cliente o
// vehículo, solo con datos de contacto.
type CreateAppointmentRequest struct {
	CitaFecha            string `json:"cita_fecha"` // YYYY-MM-DD
	CitaHora             string `json:"cita_hora"`
	CitaDescripcionBreve string `json:"cita_descripcion_breve"`
	CitaNombreContacto   string `json:"cita_nombre_contacto"`
	CitaTelefonoContacto string `json:"cita_telefono_contacto"`
}

// Validate valida campo por campo (respuesta 400 con mensajes por campo).
func (in *CreateAppointmentRequest) Validate() []FieldError {
	var errs []FieldError
	if _, err := time.Parse("2006-01-02", in.CitaFecha); err != nil {
		errs = append(errs, FieldError{Field: "cita_fecha", Message: "fecha requerida en formato YYYY-MM-DD"})
	}
	if strings.TrimSpace(in.CitaHora) == "" {
		errs = append(errs, FieldError{Field: "cita_hora", Message: "la hora es requerida"})
	}
	if strings.TrimSpace(in.CitaDescripcionBreve) == "" {
		errs = append(errs, FieldError{Field: "cita_descripcion_breve", Message: "la descripción breve es requerida"})
	}
	if strings.TrimSpace(in.CitaNombreContacto) == "" {
		errs = append(errs, FieldError{Field: "cita_nombre_contacto", Message: "el nombre de contacto es requerido"})
	}
	if strings.TrimSpace(in.CitaTelefonoContacto) == "" {
		errs = append(errs, FieldError{Field: "cita_telefono_contacto", Message: "el teléfono de contacto es requerido"})
	}
	return errs
}

// AddNoteRequest nota de seguimiento append-only.
type AddNoteRequest struct {
	TipoContacto     string  `json:"tipo_contacto"`
	Resultado        string  `json:"resultado"`
	Nota             string  `json:"nota"`
	SeguimientoFecha *string `json:"seguimiento_fecha"` // YYYY-MM-DD
}

// OpportunityResponse oportunidad en respuestas de la API.
type OpportunityResponse struct {
	ID                   string           `json:"id"`
	VehicleID            *string          `json:"vehicle_id,omitempty"`
	CustomerID           *string          `json:"customer_id,omitempty"`
	BranchID             *string          `json:"branch_id,omitempty"`
	Estado               string           `json:"estado"`
	Prioridad            string           `json:"prioridad"`
	ServicioSugerido     *string          `json:"servicio_sugerido,omitempty"`
	Descripcion          *string          `json:"descripcion,omitempty"`
	PrecioEstimado       *decimal.Decimal `json:"precio_estimado,omitempty"`
	TieneCita            bool             `json:"tiene_cita"`
	OrigenCita           *string          `json:"origen_cita,omitempty"`
	CitaFecha            *string          `json:"cita_fecha,omitempty"`
	CitaHora             *string          `json:"cita_hora,omitempty"`
	CitaDescripcionBreve *string          `json:"cita_descripcion_breve,omitempty"`
	CitaNombreContacto   *string          `json:"cita_nombre_contacto,omitempty"`
	CitaTelefonoContacto *string          `json:"cita_telefono_contacto,omitempty"`
	ConvertedToServiceID *string          `json:"converted_to_service_id,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`

	Customer *CustomerResponse `json:"customer,omitempty"`
	Vehicle  *VehicleResponse  `json:"vehicle,omitempty"`
}

// OpportunityFromEntity mapea la entidad a la respuesta.
func OpportunityFromEntity(o *entity.Opportunity) *OpportunityResponse {
	if o == nil {
		return nil
	}
	resp := &OpportunityResponse{
		ID:                   o.ID,
		VehicleID:            o.VehicleID,
		CustomerID:           o.CustomerID,
		BranchID:             o.BranchID,
		Estado:               o.Estado,
		Prioridad:            o.Prioridad,
		ServicioSugerido:     o.ServicioSugerido,
		Descripcion:          o.Descripcion,
		PrecioEstimado:       o.PrecioEstimado,
		TieneCita:            o.TieneCita,
		OrigenCita:           o.OrigenCita,
		CitaHora:             o.CitaHora,
		CitaDescripcionBreve: o.CitaDescripcionBreve,
		CitaNombreContacto:   o.CitaNombreContacto,
		CitaTelefonoContacto: o.CitaTelefonoContacto,
		ConvertedToServiceID: o.ConvertedToServiceID,
		CreatedAt:            o.CreatedAt,
	}
	if o.CitaFecha != nil {
		f := o.CitaFecha.Format("2006-01-02")
		resp.CitaFecha = &f
	}
	return resp
}

// OpportunityDetailFromEntity incluye cliente y vehículo si están vinculados.
func OpportunityDetailFromEntity(d *entity.OpportunityDetail) *OpportunityResponse {
	if d == nil {
		return nil
	}
	resp := OpportunityFromEntity(&d.Opportunity)
	resp.Customer = CustomerFromEntity(d.Customer)
	resp.Vehicle = VehicleFromEntity(d.Vehicle)
	return resp
}

// NoteResponse nota de seguimiento en respuestas.
type NoteResponse struct {
	ID               string    `json:"id"`
	TipoContacto     string    `json:"tipo_contacto"`
	Resultado        string    `json:"resultado"`
	Nota             string    `json:"nota"`
	SeguimientoFecha *string   `json:"seguimiento_fecha,omitempty"`
	UsuarioCreador   string    `json:"usuario_creador"`
	CreatedAt        time.Time `json:"created_at"`
}

// NoteFromEntity mapea la nota a la respuesta.
func NoteFromEntity(n *entity.OpportunityNote) *NoteResponse {
	resp := &NoteResponse{
		ID:             n.ID,
		TipoContacto:   n.TipoContacto,
		Resultado:      n.Resultado,
		Nota:           n.Nota,
		UsuarioCreador: n.UsuarioCreador,
		CreatedAt:      n.CreatedAt,
	}
	if n.SeguimientoFecha != nil {
		f := n.SeguimientoFecha.Format("2006-01-02")
		resp.SeguimientoFecha = &f
	}
	return resp
}
