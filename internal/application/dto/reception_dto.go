package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Acciones válidas del flujo walk-in.
const (
	AccionServicioInmediato = "servicio_inmediato"
	AccionAgendarCita       = "agendar_cita"
)

// ServicioInmediatoInput datos del servicio a abrir en el momento.
type ServicioInmediatoInput struct {
	TipoServicio   string           `json:"tipo_servicio"`
	Descripcion    string           `json:"descripcion"`
	PrecioEstimado *decimal.Decimal `json:"precio_estimado"`
	MechanicID     *string          `json:"mecanico_id"`
}

// CitaWalkInInput datos de la cita a agendar para un walk-in que no se queda.
type CitaWalkInInput struct {
	Fecha            string `json:"fecha"` // YYYY-MM-DD
	Hora             string `json:"hora"`
	DescripcionBreve string `json:"descripcion_breve"`
}

// WalkInRequest cliente presente en el taller sin cita previa. Cliente y
// vehículo llegan como id existente o como datos inline, y la acción decide
// si se abre servicio de inmediato o se agenda cita.
type WalkInRequest struct {
	ClienteExistenteID  *string                 `json:"cliente_existente_id"`
	ClienteNuevo        *NuevoClienteInput      `json:"cliente_nuevo"`
	VehiculoExistenteID *string                 `json:"vehiculo_existente_id"`
	VehiculoNuevo       *NuevoVehiculoInput     `json:"vehiculo_nuevo"`
	Accion              string                  `json:"accion"`
	ServicioInmediato   *ServicioInmediatoInput `json:"servicio_inmediato"`
	Cita                *CitaWalkInInput        `json:"cita"`
}

// Validate revisa la forma completa de la petición antes de abrir la
// transacción: payloads de cliente/vehículo y el sub-payload que exige la
// acción elegida. Así ningún insert ocurre para una petición malformada.
func (in *WalkInRequest) Validate() []FieldError {
	var errs []FieldError
	switch {
	case in.ClienteExistenteID == nil && in.ClienteNuevo == nil:
		errs = append(errs, FieldError{Field: "cliente_nuevo", Message: "se requiere cliente_existente_id o cliente_nuevo"})
	case in.ClienteNuevo != nil:
		errs = append(errs, in.ClienteNuevo.Validate()...)
	}
	switch {
	case in.VehiculoExistenteID == nil && in.VehiculoNuevo == nil:
		errs = append(errs, FieldError{Field: "vehiculo_nuevo", Message: "se requiere vehiculo_existente_id o vehiculo_nuevo"})
	case in.VehiculoNuevo != nil:
		errs = append(errs, in.VehiculoNuevo.Validate()...)
	}

	switch in.Accion {
	case AccionServicioInmediato:
		if in.ServicioInmediato == nil || strings.TrimSpace(in.ServicioInmediato.TipoServicio) == "" {
			errs = append(errs, FieldError{Field: "servicio_inmediato.tipo_servicio", Message: "el tipo de servicio es requerido"})
		}
	case AccionAgendarCita:
		if in.Cita == nil {
			errs = append(errs, FieldError{Field: "cita", Message: "los datos de la cita son requeridos"})
		} else {
			if _, err := time.Parse("2006-01-02", in.Cita.Fecha); err != nil {
				errs = append(errs, FieldError{Field: "cita.fecha", Message: "fecha requerida en formato YYYY-MM-DD"})
			}
			if strings.TrimSpace(in.Cita.Hora) == "" {
				errs = append(errs, FieldError{Field: "cita.hora", Message: "la hora es requerida"})
			}
			if strings.TrimSpace(in.Cita.DescripcionBreve) == "" {
				errs = append(errs, FieldError{Field: "cita.descripcion_breve", Message: "la descripción breve es requerida"})
			}
		}
	default:
		errs = append(errs, FieldError{Field: "accion", Message: "accion debe ser servicio_inmediato o agendar_cita"})
	}
	return errs
}

// WalkInResponse resultado del flujo walk-in.
type WalkInResponse struct {
	CustomerID  string               `json:"customer_id"`
	VehicleID   string               `json:"vehicle_id"`
	Accion      string               `json:"accion"`
	Service     *ServiceResponse     `json:"service,omitempty"`
	Opportunity *OpportunityResponse `json:"opportunity,omitempty"`
}

// ConvertToCitaRequest agendar cita sobre una oportunidad contactada.
type ConvertToCitaRequest struct {
	OpportunityID string `json:"opportunity_id"`
	CitaFecha     string `json:"cita_fecha"` // YYYY-MM-DD
	CitaHora      string `json:"cita_hora"`
}

// Validate valida la petición de conversión a cita.
func (in *ConvertToCitaRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(in.OpportunityID) == "" {
		errs = append(errs, FieldError{Field: "opportunity_id", Message: "el id de la oportunidad es requerido"})
	}
	if _, err := time.Parse("2006-01-02", in.CitaFecha); err != nil {
		errs = append(errs, FieldError{Field: "cita_fecha", Message: "fecha requerida en formato YYYY-MM-DD"})
	}
	if strings.TrimSpace(in.CitaHora) == "" {
		errs = append(errs, FieldError{Field: "cita_hora", Message: "la hora es requerida"})
	}
	return errs
}

// RecepcionarRequest llegada del cliente citado: abre la orden de servicio.
// Los campos opcionales heredan los valores sugeridos en la oportunidad.
type RecepcionarRequest struct {
	TipoServicio    *string          `json:"tipo_servicio"`
	Descripcion     *string          `json:"descripcion"`
	PrecioEstimado  *decimal.Decimal `json:"precio_estimado"`
	UsuarioMecanico string           `json:"usuario_mecanico"`
}

// RecepcionResponse orden creada + oportunidad actualizada.
type RecepcionResponse struct {
	Service     *ServiceResponse     `json:"service"`
	Opportunity *OpportunityResponse `json:"opportunity"`
}

// ConvertToServiceRequest conversión administrativa de cita a servicio, con
// alta inline opcional de cliente y vehículo.
type ConvertToServiceRequest struct {
	TipoServicio string              `json:"tipo_servicio"`
	Descripcion  string              `json:"descripcion"`
	Precio       *decimal.Decimal    `json:"precio"`
	MechanicID   *string             `json:"mechanic_id"`
	CustomerID   *string             `json:"customer_id"`
	NewCustomer  *NuevoClienteInput  `json:"new_customer"`
	VehicleID    *string             `json:"vehicle_id"`
	NewVehicle   *NuevoVehiculoInput `json:"new_vehicle"`
}

// Validate valida la petición de conversión a servicio.
func (in *ConvertToServiceRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(in.TipoServicio) == "" {
		errs = append(errs, FieldError{Field: "tipo_servicio", Message: "el tipo de servicio es requerido"})
	}
	switch {
	case in.CustomerID == nil && in.NewCustomer == nil:
		errs = append(errs, FieldError{Field: "customer_id", Message: "se requiere customer_id o new_customer"})
	case in.NewCustomer != nil:
		errs = append(errs, in.NewCustomer.Validate()...)
	}
	switch {
	case in.VehicleID == nil && in.NewVehicle == nil:
		errs = append(errs, FieldError{Field: "vehicle_id", Message: "se requiere vehicle_id o new_vehicle"})
	case in.NewVehicle != nil:
		errs = append(errs, in.NewVehicle.Validate()...)
	}
	return errs
}
