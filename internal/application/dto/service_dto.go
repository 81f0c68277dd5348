package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// ServiceResponse orden de servicio en respuestas de la API.
type ServiceResponse struct {
	ID            string          `json:"id"`
	VehicleID     string          `json:"vehicle_id"`
	CustomerID    string          `json:"customer_id"`
	MechanicID    *string         `json:"mechanic_id,omitempty"`
	BranchID      *string         `json:"branch_id,omitempty"`
	OpportunityID *string         `json:"opportunity_id,omitempty"`
	TipoServicio  string          `json:"tipo_servicio"`
	Descripcion   string          `json:"descripcion"`
	Precio        decimal.Decimal `json:"precio"`
	Estado        string          `json:"estado"`
	FechaServicio time.Time       `json:"fecha_servicio"`
	CreatedAt     time.Time       `json:"created_at"`

	Customer *CustomerResponse `json:"customer,omitempty"`
	Vehicle  *VehicleResponse  `json:"vehicle,omitempty"`
	Mechanic *MechanicResponse `json:"mechanic,omitempty"`
}

// ServiceFromEntity mapea la entidad a la respuesta.
func ServiceFromEntity(s *entity.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:            s.ID,
		VehicleID:     s.VehicleID,
		CustomerID:    s.CustomerID,
		MechanicID:    s.MechanicID,
		BranchID:      s.BranchID,
		OpportunityID: s.OpportunityID,
		TipoServicio:  s.TipoServicio,
		Descripcion:   s.Descripcion,
		Precio:        s.Precio,
		Estado:        s.Estado,
		FechaServicio: s.FechaServicio,
		CreatedAt:     s.CreatedAt,
	}
}

// ServiceDetailFromEntity incluye cliente, vehículo y mecánico.
func ServiceDetailFromEntity(d *entity.ServiceDetail) *ServiceResponse {
	if d == nil {
		return nil
	}
	resp := ServiceFromEntity(&d.Service)
	resp.Customer = CustomerFromEntity(d.Customer)
	resp.Vehicle = VehicleFromEntity(d.Vehicle)
	resp.Mechanic = MechanicFromEntity(d.Mechanic)
	return resp
}

// UpdateServiceEstadoRequest transición de estado de una orden.
type UpdateServiceEstadoRequest struct {
	Estado string `json:"estado"`
}

// MechanicResponse mecánico en respuestas.
type MechanicResponse struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Especialidad *string `json:"especialidad,omitempty"`
	Activo       bool    `json:"activo"`
}

// MechanicFromEntity mapea la entidad a la respuesta.
func MechanicFromEntity(m *entity.Mechanic) *MechanicResponse {
	if m == nil {
		return nil
	}
	return &MechanicResponse{ID: m.ID, Nombre: m.Nombre, Especialidad: m.Especialidad, Activo: m.Activo}
}

// CreateMechanicRequest alta de mecánico.
type CreateMechanicRequest struct {
	Nombre       string  `json:"nombre"`
	Especialidad *string `json:"especialidad"`
	BranchID     *string `json:"branch_id"`
}

// BranchResponse sucursal en respuestas.
type BranchResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
}

// BranchFromEntity mapea la entidad a la respuesta.
func BranchFromEntity(b *entity.Branch) *BranchResponse {
	if b == nil {
		return nil
	}
	return &BranchResponse{ID: b.ID, Nombre: b.Nombre, Direccion: b.Direccion, Telefono: b.Telefono}
}
