package reception

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

// ProcessWalkIn atiende a un cliente presente en el taller sin cita previa.
// Resuelve cliente y vehículo (existentes o altas inline) y, según la acción,
// abre una orden de servicio inmediata o agenda una cita como oportunidad.
// Todo ocurre en una sola transacción: a lo más un insert de cliente, a lo
// más uno de vehículo y exactamente un servicio-u-oportunidad por llamada;
// cualquier fallo revierte también las altas de cliente/vehículo.
func (uc *UseCase) ProcessWalkIn(ctx context.Context, in dto.WalkInRequest) (*dto.WalkInResponse, error) {
	// Validación completa antes de abrir la transacción: una petición
	// malformada no debe ejecutar ningún insert.
	if len(in.Validate()) > 0 {
		return nil, domain.ErrInvalidInput
	}

	resp := &dto.WalkInResponse{Accion: in.Accion}
	err := uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		oppRepo repository.OpportunityRepository,
		serviceRepo repository.ServiceRepository,
	) error {
		customerID, err := resolveCustomer(ctx, customerRepo, in.ClienteExistenteID, in.ClienteNuevo)
		if err != nil {
			return err
		}
		vehicleID, err := resolveVehicle(ctx, vehicleRepo, in.VehiculoExistenteID, in.VehiculoNuevo, customerID)
		if err != nil {
			return err
		}
		resp.CustomerID = customerID
		resp.VehicleID = vehicleID

		switch in.Accion {
		case dto.AccionServicioInmediato:
			return uc.walkInService(ctx, serviceRepo, in.ServicioInmediato, customerID, vehicleID, resp)
		case dto.AccionAgendarCita:
			return uc.walkInCita(ctx, customerRepo, oppRepo, in.Cita, customerID, vehicleID, resp)
		default:
			return domain.ErrInvalidInput
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// walkInService abre la orden de servicio inmediata en estado cotizado.
func (uc *UseCase) walkInService(ctx context.Context, serviceRepo repository.ServiceRepository, in *dto.ServicioInmediatoInput, customerID, vehicleID string, resp *dto.WalkInResponse) error {
	tipo := strings.TrimSpace(in.TipoServicio)
	if tipo == "" {
		return domain.ErrInvalidInput
	}
	descripcion := strings.TrimSpace(in.Descripcion)
	if descripcion == "" {
		descripcion = tipo
	}

	now := time.Now()
	service := &entity.Service{
		ID:            uuid.New().String(),
		VehicleID:     vehicleID,
		CustomerID:    customerID,
		MechanicID:    in.MechanicID,
		TipoServicio:  tipo,
		Descripcion:   descripcion,
		Precio:        priceOrZero(in.PrecioEstimado),
		Estado:        entity.ServicioCotizado,
		FechaServicio: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := serviceRepo.Create(ctx, service); err != nil {
		return err
	}
	resp.Service = dto.ServiceFromEntity(service)
	return nil
}

// walkInCita agenda la visita como oportunidad con cita. Los datos de
// contacto se copian releyendo la fila del cliente resuelto (pudo existir de
// antes o haberse creado en esta misma transacción).
func (uc *UseCase) walkInCita(ctx context.Context, customerRepo repository.CustomerRepository, oppRepo repository.OpportunityRepository, in *dto.CitaWalkInInput, customerID, vehicleID string, resp *dto.WalkInResponse) error {
	fecha, err := time.Parse("2006-01-02", in.Fecha)
	if err != nil {
		return domain.ErrInvalidInput
	}
	customer, err := customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCustomerNotFound
	}

	now := time.Now()
	opp := &entity.Opportunity{
		ID:                   uuid.New().String(),
		VehicleID:            &vehicleID,
		CustomerID:           &customerID,
		Estado:               entity.OppAgendado,
		Prioridad:            entity.PrioridadMedia,
		ServicioSugerido:     strPtr(strings.TrimSpace(in.DescripcionBreve)),
		TieneCita:            true,
		OrigenCita:           strPtr(entity.CitaOrigenWalkIn),
		CitaFecha:            &fecha,
		CitaHora:             strPtr(in.Hora),
		CitaDescripcionBreve: strPtr(strings.TrimSpace(in.DescripcionBreve)),
		CitaNombreContacto:   strPtr(customer.Nombre),
		CitaTelefonoContacto: strPtr(customer.Telefono),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := oppRepo.Create(ctx, opp); err != nil {
		return err
	}
	resp.Opportunity = dto.OpportunityFromEntity(opp)
	return nil
}
