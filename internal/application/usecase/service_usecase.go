package usecase

import (
	"context"

	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// Transiciones de estado permitidas para una orden de servicio. Cancelar es
// posible desde cualquier estado no terminal.
var serviceTransitions = map[string][]string{
	entity.ServicioCotizado:   {entity.ServicioAutorizado, entity.ServicioCancelado},
	entity.ServicioAutorizado: {entity.ServicioEnProceso, entity.ServicioCancelado},
	entity.ServicioEnProceso:  {entity.ServicioCompletado, entity.ServicioCancelado},
}

// ServiceOrderPDFGenerator puerto de generación de la orden imprimible.
type ServiceOrderPDFGenerator interface {
	GenerateServiceOrderPDF(ctx context.Context, detail *entity.ServiceDetail) ([]byte, error)
}

// ServiceUseCase casos de uso de órdenes de servicio.
type ServiceUseCase struct {
	repo   repository.ServiceRepository
	pdfGen ServiceOrderPDFGenerator
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, pdfGen ServiceOrderPDFGenerator) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, pdfGen: pdfGen}
}

// GetByID devuelve la orden con cliente, vehículo y mecánico, o ErrNotFound.
func (uc *ServiceUseCase) GetByID(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	detail, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ServiceDetailFromEntity(detail), nil
}

// List lista órdenes con filtros.
func (uc *ServiceUseCase) List(ctx context.Context, f repository.ServiceFilter) ([]*dto.ServiceResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ServiceFromEntity(s))
	}
	return out, nil
}

// UpdateEstado aplica una transición de estado validada.
func (uc *ServiceUseCase) UpdateEstado(ctx context.Context, id string, in dto.UpdateServiceEstadoRequest) (*dto.ServiceResponse, error) {
	service, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	if !transitionAllowed(service.Estado, in.Estado) {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateEstado(ctx, id, in.Estado); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// OrderPDF genera la orden de servicio imprimible en PDF.
func (uc *ServiceUseCase) OrderPDF(ctx context.Context, id string) ([]byte, error) {
	detail, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.GenerateServiceOrderPDF(ctx, detail)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range serviceTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
