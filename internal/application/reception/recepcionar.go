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

// Recepcionar convierte la cita de una oportunidad en orden de servicio
// cuando el cliente citado llega al taller. No resuelve entidades: la
// oportunidad debe traer ya vehículo y cliente; si falta alguno se rechaza y
// el operador debe pasar por el flujo walk-in. Tipo, descripción y precio no
// provistos heredan lo sugerido en la oportunidad.
//
// Este flujo NO escribe converted_to_service_id: recepcionar es distinto de
// la conversión administrativa y una cita recepcionada puede aún convertirse
// por esa otra vía. Comportamiento heredado, ver DESIGN.md.
func (uc *UseCase) Recepcionar(ctx context.Context, opportunityID string, in dto.RecepcionarRequest) (*dto.RecepcionResponse, error) {
	resp := &dto.RecepcionResponse{}
	err := uc.tx.Run(ctx, func(
		_ repository.CustomerRepository,
		_ repository.VehicleRepository,
		oppRepo repository.OpportunityRepository,
		serviceRepo repository.ServiceRepository,
	) error {
		detail, err := oppRepo.GetDetail(ctx, opportunityID)
		if err != nil {
			return err
		}
		if detail == nil {
			return domain.ErrNotFound
		}
		opp := detail.Opportunity
		if !opp.TieneCita {
			return domain.ErrSinCita
		}
		if opp.VehicleID == nil || opp.CustomerID == nil {
			return domain.ErrCitaIncompleta
		}

		tipo := firstNonEmpty(in.TipoServicio, opp.ServicioSugerido)
		if tipo == "" {
			tipo = ServicioGeneral
		}
		descripcion := firstNonEmpty(in.Descripcion, opp.Descripcion)
		if descripcion == "" {
			descripcion = tipo
		}
		var mechanicID *string
		if in.UsuarioMecanico != "" {
			mechanicID = &in.UsuarioMecanico
		}

		now := time.Now()
		service := &entity.Service{
			ID:            uuid.New().String(),
			VehicleID:     *opp.VehicleID,
			CustomerID:    *opp.CustomerID,
			MechanicID:    mechanicID,
			BranchID:      opp.BranchID,
			OpportunityID: &opp.ID,
			TipoServicio:  tipo,
			Descripcion:   descripcion,
			Precio:        priceOrZero(in.PrecioEstimado, opp.PrecioEstimado),
			Estado:        entity.ServicioCotizado,
			FechaServicio: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := serviceRepo.Create(ctx, service); err != nil {
			return err
		}
		if err := oppRepo.UpdateEstado(ctx, opp.ID, entity.OppEnProceso); err != nil {
			return err
		}

		updated, err := oppRepo.GetByID(ctx, opp.ID)
		if err != nil {
			return err
		}
		resp.Service = dto.ServiceFromEntity(service)
		resp.Opportunity = dto.OpportunityFromEntity(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
