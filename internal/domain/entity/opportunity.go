package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una oportunidad.
const (
	OppPendiente  = "pendiente"
	OppContactado = "contactado"
	OppAgendado   = "agendado"
	OppEnProceso  = "en_proceso"
	OppCompletado = "completado"
	OppPerdido    = "perdido"
)

// Prioridades de una oportunidad.
const (
	PrioridadAlta  = "alta"
	PrioridadMedia = "media"
	PrioridadBaja  = "baja"
)

// Orígenes de una cita agendada sobre la oportunidad.
const (
	CitaOrigenWalkIn      = "walk_in"
	CitaOrigenOpportunity = "opportunity"
	CitaOrigenManual      = "manual"
)

// Opportunity es un prospecto de venta/servicio. Vehículo y cliente son
// opcionales: una "cita rápida" puede existir antes de conocer cualquiera de
// los dos. ConvertedToServiceID se escribe a lo más una vez; una segunda
// conversión debe rechazarse.
type Opportunity struct {
	ID                   string
	VehicleID            *string
	CustomerID           *string
	BranchID             *string
	Estado               string // pendiente, contactado, agendado, en_proceso, completado, perdido
	Prioridad            string // alta, media, baja
	ServicioSugerido     *string
	Descripcion          *string
	PrecioEstimado       *decimal.Decimal
	TieneCita            bool
	OrigenCita           *string // walk_in, opportunity, manual
	CitaFecha            *time.Time
	CitaHora             *string
	CitaDescripcionBreve *string
	CitaNombreContacto   *string
	CitaTelefonoContacto *string
	ConvertedToServiceID *string
	UsuarioCreador       *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OpportunityNote entrada append-only de seguimiento sobre una oportunidad.
// Nunca se actualiza ni se borra.
type OpportunityNote struct {
	ID               string
	OpportunityID    string
	TipoContacto     string // llamada, whatsapp, presencial
	Resultado        string
	Nota             string
	SeguimientoFecha *time.Time
	UsuarioCreador   string
	CreatedAt        time.Time
}

// OpportunityDetail oportunidad con sus filas relacionadas (para recepción y
// respuestas de la API).
type OpportunityDetail struct {
	Opportunity
	Customer *Customer
	Vehicle  *Vehicle
}
