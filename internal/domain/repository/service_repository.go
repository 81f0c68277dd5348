package repository

import (
	"context"
	"time"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// ServiceFilter filtros de listado de órdenes de servicio.
type ServiceFilter struct {
	Estado     string
	CustomerID string
	VehicleID  string
	Fecha      *time.Time // servicios de un día concreto
	Limit      int
	Offset     int
}

// ServiceRepository define el puerto de persistencia para Service.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	// GetDetail devuelve la orden con cliente, vehículo y mecánico resueltos.
	GetDetail(ctx context.Context, id string) (*entity.ServiceDetail, error)
	List(ctx context.Context, f ServiceFilter) ([]*entity.Service, error)
	UpdateEstado(ctx context.Context, id, estado string) error
}
