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

// CustomerUseCase casos de uso de clientes.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	vehicleRepo repository.VehicleRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, vehicleRepo repository.VehicleRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, vehicleRepo: vehicleRepo}
}

// Create registra un cliente. El teléfono es único; WhatsApp por defecto es
// el mismo teléfono.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.NuevoClienteInput) (*dto.CustomerResponse, error) {
	if len(in.Validate()) > 0 {
		return nil, domain.ErrInvalidInput
	}
	whatsapp := strings.TrimSpace(in.WhatsApp)
	if whatsapp == "" {
		whatsapp = strings.TrimSpace(in.Telefono)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		Telefono:  strings.TrimSpace(in.Telefono),
		WhatsApp:  whatsapp,
		Email:     in.Email,
		Direccion: in.Direccion,
		RFC:       in.RFC,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return dto.CustomerFromEntity(customer), nil
}

// GetByID devuelve el cliente o ErrNotFound.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return dto.CustomerFromEntity(customer), nil
}

// Search busca clientes por nombre y/o teléfono.
func (uc *CustomerUseCase) Search(ctx context.Context, nombre, telefono string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.Search(ctx, repository.CustomerFilter{
		Nombre:   nombre,
		Telefono: telefono,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CustomerFromEntity(c))
	}
	return out, nil
}

// Update actualización parcial: solo los campos presentes.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerPatchRequest) (*dto.CustomerResponse, error) {
	patch := repository.CustomerPatch{
		Nombre:    in.Nombre,
		Telefono:  in.Telefono,
		WhatsApp:  in.WhatsApp,
		Email:     in.Email,
		Direccion: in.Direccion,
		RFC:       in.RFC,
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete borra al cliente solo si no tiene vehículos activos; un cliente con
// vehículos nunca se borra físicamente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	count, err := uc.vehicleRepo.CountActiveByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCustomerHasVehicles
	}
	return uc.repo.Delete(ctx, id)
}
