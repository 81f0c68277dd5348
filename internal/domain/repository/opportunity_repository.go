package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// OpportunityPatch campos opcionales para actualización parcial (nil = no tocar).
type OpportunityPatch struct {
	Estado           *string
	Prioridad        *string
	ServicioSugerido *string
	Descripcion      *string
	PrecioEstimado   *decimal.Decimal
	VehicleID        *string
	CustomerID       *string
}

// OpportunityFilter filtros de listado.
type OpportunityFilter struct {
	Estado    string
	Prioridad string
	ConCita   *bool
	CitaFecha *time.Time // citas de un día concreto
	Limit     int
	Offset    int
}

// CitaUpdate datos de la cita a fijar sobre una oportunidad (usado por la
// conversión a cita y por la cita rápida).
type CitaUpdate struct {
	Fecha            time.Time
	Hora             string
	DescripcionBreve string
	NombreContacto   string
	TelefonoContacto string
	Origen           string
}

// OpportunityRepository define el puerto de persistencia para Opportunity.
type OpportunityRepository interface {
	Create(ctx context.Context, opp *entity.Opportunity) error
	GetByID(ctx context.Context, id string) (*entity.Opportunity, error)
	// GetDetail devuelve la oportunidad con cliente y vehículo resueltos
	// (nil cuando no están vinculados).
	GetDetail(ctx context.Context, id string) (*entity.OpportunityDetail, error)
	List(ctx context.Context, f OpportunityFilter) ([]*entity.Opportunity, error)
	Update(ctx context.Context, id string, patch OpportunityPatch) error
	UpdateEstado(ctx context.Context, id, estado string) error
	// SetCita marca tiene_cita y escribe los campos de cita + estado agendado.
	SetCita(ctx context.Context, id string, cita CitaUpdate) error
	// MarkConverted fija converted_to_service_id, vincula cliente/vehículo y
	// limpia tiene_cita, solo si la oportunidad aún no fue convertida.
	// Devuelve false (sin error) cuando otra petición ganó la carrera.
	MarkConverted(ctx context.Context, id, serviceID, customerID, vehicleID string) (bool, error)
}

// OpportunityNoteRepository notas de seguimiento (append-only).
type OpportunityNoteRepository interface {
	Append(ctx context.Context, note *entity.OpportunityNote) error
	ListByOpportunity(ctx context.Context, opportunityID string) ([]*entity.OpportunityNote, error)
}
