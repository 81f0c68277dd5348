package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de servicio.
const (
	ServicioCotizado   = "cotizado"
	ServicioAutorizado = "autorizado"
	ServicioEnProceso  = "en_proceso"
	ServicioCompletado = "completado"
	ServicioCancelado  = "cancelado"
)

// Service es una orden de trabajo. A diferencia de Opportunity, vehículo y
// cliente son obligatorios desde la creación.
type Service struct {
	ID            string
	VehicleID     string
	CustomerID    string
	MechanicID    *string
	BranchID      *string
	OpportunityID *string // origen, si nació de una cita recepcionada
	TipoServicio  string
	Descripcion   string
	Precio        decimal.Decimal
	Estado        string // cotizado, autorizado, en_proceso, completado, cancelado
	FechaServicio time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ServiceDetail orden de servicio con cliente, vehículo y mecánico resueltos.
type ServiceDetail struct {
	Service
	Customer *Customer
	Vehicle  *Vehicle
	Mechanic *Mechanic
}
