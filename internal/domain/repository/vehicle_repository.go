package repository

import (
	"context"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// VehiclePatch campos opcionales para actualización parcial (nil = no tocar).
// La placa no se actualiza por aquí: usar ChangePlate para conservar historial.
type VehiclePatch struct {
	Marca       *string
	Modelo      *string
	Anio        *int
	Color       *string
	Kilometraje *int
	CustomerID  *string
}

// VehicleFilter filtros de búsqueda de vehículos.
type VehicleFilter struct {
	VIN         string
	Placa       string
	CustomerID  string
	SoloActivos bool
	Limit       int
	Offset      int
}

// VehicleRepository define el puerto de persistencia para Vehicle y su
// historial de placas.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error)
	Search(ctx context.Context, f VehicleFilter) ([]*entity.Vehicle, error)
	Update(ctx context.Context, id string, patch VehiclePatch) error
	Deactivate(ctx context.Context, id string) error
	// PlateInUse indica si la placa pertenece a algún vehículo activo
	// distinto de excludeVehicleID (cadena vacía = sin exclusión).
	PlateInUse(ctx context.Context, placa, excludeVehicleID string) (bool, error)
	// ChangePlate actualiza la placa y agrega la entrada al historial.
	ChangePlate(ctx context.Context, vehicleID, placaNueva string, motivo *string) error
	ListPlateHistory(ctx context.Context, vehicleID string) ([]*entity.PlateHistory, error)
	CountActiveByCustomer(ctx context.Context, customerID string) (int, error)
}
