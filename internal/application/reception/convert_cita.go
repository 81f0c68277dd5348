package reception

import (
	"context"
	"time"

	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// ConvertToCita agenda una cita sobre una oportunidad existente cuando el
// seguimiento telefónico lo consigue. Exige que la oportunidad ya tenga
// cliente vinculado: sin cliente no hay datos de contacto que copiar y ese
// caso va por walk-in. Aunque la escritura es un solo UPDATE, corre en el
// mismo runner transaccional que el resto de los flujos.
func (uc *UseCase) ConvertToCita(ctx context.Context, in dto.ConvertToCitaRequest) (*dto.OpportunityResponse, error) {
	if len(in.Validate()) > 0 {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := time.Parse("2006-01-02", in.CitaFecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.OpportunityResponse
	err = uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.VehicleRepository,
		oppRepo repository.OpportunityRepository,
		_ repository.ServiceRepository,
	) error {
		opp, err := oppRepo.GetByID(ctx, in.OpportunityID)
		if err != nil {
			return err
		}
		if opp == nil {
			return domain.ErrNotFound
		}
		if opp.CustomerID == nil {
			return domain.ErrCustomerNotFound
		}
		customer, err := customerRepo.GetByID(ctx, *opp.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		cita := repository.CitaUpdate{
			Fecha:            fecha,
			Hora:             in.CitaHora,
			DescripcionBreve: firstNonEmpty(opp.ServicioSugerido),
			NombreContacto:   customer.Nombre,
			TelefonoContacto: customer.Telefono,
			Origen:           entity.CitaOrigenOpportunity,
		}
		if err := oppRepo.SetCita(ctx, opp.ID, cita); err != nil {
			return err
		}
		updated, err := oppRepo.GetByID(ctx, opp.ID)
		if err != nil {
			return err
		}
		resp = dto.OpportunityFromEntity(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
