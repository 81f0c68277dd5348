package reception

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// ConvertToService conversión administrativa de una cita en orden de
// servicio, con alta inline opcional de cliente y vehículo. Es el único
// flujo con guarda explícita de "ya convertida": converted_to_service_id se
// escribe mediante un UPDATE condicional sobre la columna en NULL, de modo
// que dos peticiones concurrentes no pueden producir dos servicios — la que
// pierda la carrera recibe conflicto y su transacción completa se revierte.
func (uc *UseCase) ConvertToService(ctx context.Context, opportunityID string, in dto.ConvertToServiceRequest) (*dto.ServiceResponse, error) {
	if len(in.Validate()) > 0 {
		return nil, domain.ErrInvalidInput
	}

	var serviceID string
	err := uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		oppRepo repository.OpportunityRepository,
		serviceRepo repository.ServiceRepository,
	) error {
		opp, err := oppRepo.GetByID(ctx, opportunityID)
		if err != nil {
			return err
		}
		if opp == nil {
			return domain.ErrNotFound
		}
		if !opp.TieneCita {
			return domain.ErrSinCita
		}
		if opp.ConvertedToServiceID != nil {
			return domain.ErrAlreadyConverted
		}

		customerID, err := resolveCustomer(ctx, customerRepo, in.CustomerID, in.NewCustomer)
		if err != nil {
			return err
		}
		vehicleID, err := resolveVehicle(ctx, vehicleRepo, in.VehicleID, in.NewVehicle, customerID)
		if err != nil {
			return err
		}

		descripcion := in.Descripcion
		if descripcion == "" {
			descripcion = in.TipoServicio
		}
		now := time.Now()
		service := &entity.Service{
			ID:            uuid.New().String(),
			VehicleID:     vehicleID,
			CustomerID:    customerID,
			MechanicID:    in.MechanicID,
			BranchID:      opp.BranchID,
			OpportunityID: &opp.ID,
			TipoServicio:  in.TipoServicio,
			Descripcion:   descripcion,
			Precio:        priceOrZero(in.Precio, opp.PrecioEstimado),
			Estado:        entity.ServicioAutorizado,
			FechaServicio: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := serviceRepo.Create(ctx, service); err != nil {
			return err
		}

		// La guarda real contra doble conversión: si otra petición convirtió
		// entre nuestro SELECT y este punto, el UPDATE no afecta filas y todo
		// lo anterior (incluido el insert del servicio) se revierte.
		converted, err := oppRepo.MarkConverted(ctx, opp.ID, service.ID, customerID, vehicleID)
		if err != nil {
			return err
		}
		if !converted {
			return domain.ErrAlreadyConverted
		}
		serviceID = service.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Relectura fuera de la transacción: fila completa con cliente, vehículo
	// y mecánico para la respuesta.
	detail, err := uc.serviceRepo.GetDetail(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ServiceDetailFromEntity(detail), nil
}
