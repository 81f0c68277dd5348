package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repositorios atados a una misma
// transacción. Misma forma que el runner de recepción; el cambio de placa
// escribe vehículo e historial y no puede quedar a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		oppRepo repository.OpportunityRepository,
		serviceRepo repository.ServiceRepository,
	) error) error
}

// VehicleUseCase casos de uso de vehículos.
type VehicleUseCase struct {
	repo repository.VehicleRepository
	tx   TxRunner
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, tx TxRunner) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, tx: tx}
}

// Create registra un vehículo. La placa no puede estar en uso por otro
// vehículo activo.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.NuevoVehiculoInput, customerID *string) (*dto.VehicleResponse, error) {
	if len(in.Validate()) > 0 {
		return nil, domain.ErrInvalidInput
	}
	placa := strings.TrimSpace(in.PlacaActual)
	inUse, err := uc.repo.PlateInUse(ctx, placa, "")
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, domain.ErrDuplicatePlate
	}
	km := 0
	if in.Kilometraje != nil {
		km = *in.Kilometraje
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:          uuid.New().String(),
		VIN:         in.VIN,
		Marca:       in.Marca,
		Modelo:      in.Modelo,
		Anio:        in.Anio,
		Color:       in.Color,
		PlacaActual: placa,
		Kilometraje: km,
		CustomerID:  customerID,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return dto.VehicleFromEntity(vehicle), nil
}

// GetByID devuelve el vehículo o ErrNotFound.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return dto.VehicleFromEntity(v), nil
}

// GetByVIN busca por VIN exacto (llave de negocio).
func (uc *VehicleUseCase) GetByVIN(ctx context.Context, vin string) (*dto.VehicleResponse, error) {
	v, err := uc.repo.GetByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return dto.VehicleFromEntity(v), nil
}

// Search busca vehículos por VIN, placa o propietario.
func (uc *VehicleUseCase) Search(ctx context.Context, f repository.VehicleFilter) ([]*dto.VehicleResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.VehicleFromEntity(v))
	}
	return out, nil
}

// Update actualización parcial (sin placa: esa va por ChangePlate).
func (uc *VehicleUseCase) Update(ctx context.Context, id string, in dto.VehiclePatchRequest) (*dto.VehicleResponse, error) {
	patch := repository.VehiclePatch{
		Marca:       in.Marca,
		Modelo:      in.Modelo,
		Anio:        in.Anio,
		Color:       in.Color,
		Kilometraje: in.Kilometraje,
		CustomerID:  in.CustomerID,
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// ChangePlate cambia la placa dejando rastro en el historial. La placa nueva
// no puede estar en uso por otro vehículo activo. Corre dentro de una
// transacción: si falla el alta del historial se revierte también la placa.
func (uc *VehicleUseCase) ChangePlate(ctx context.Context, id string, in dto.ChangePlateRequest) (*dto.VehicleResponse, error) {
	placa := strings.TrimSpace(in.PlacaNueva)
	if placa == "" {
		return nil, domain.ErrInvalidInput
	}
	err := uc.tx.Run(ctx, func(
		_ repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		_ repository.OpportunityRepository,
		_ repository.ServiceRepository,
	) error {
		inUse, err := vehicleRepo.PlateInUse(ctx, placa, id)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrDuplicatePlate
		}
		return vehicleRepo.ChangePlate(ctx, id, placa, in.Motivo)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// PlateHistory historial de placas del vehículo.
func (uc *VehicleUseCase) PlateHistory(ctx context.Context, id string) ([]*dto.PlateHistoryResponse, error) {
	list, err := uc.repo.ListPlateHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PlateHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, &dto.PlateHistoryResponse{
			ID:            h.ID,
			PlacaAnterior: h.PlacaAnterior,
			PlacaNueva:    h.PlacaNueva,
			Motivo:        h.Motivo,
			CreatedAt:     h.CreatedAt,
		})
	}
	return out, nil
}

// Deactivate baja lógica: el vehículo deja de contar para unicidad de placa.
func (uc *VehicleUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.repo.Deactivate(ctx, id)
}
