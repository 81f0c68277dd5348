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

// resolveCustomer devuelve el id del cliente a usar: el existente tal cual
// (sin verificación previa de existencia; la integridad referencial del
// esquema responde si no existe), o el de un alta inline. WhatsApp por
// defecto es el mismo teléfono.
func resolveCustomer(ctx context.Context, repo repository.CustomerRepository, existingID *string, nuevo *dto.NuevoClienteInput) (string, error) {
	if existingID != nil && *existingID != "" {
		return *existingID, nil
	}
	if nuevo == nil {
		return "", domain.ErrInvalidInput
	}
	whatsapp := strings.TrimSpace(nuevo.WhatsApp)
	if whatsapp == "" {
		whatsapp = nuevo.Telefono
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(nuevo.Nombre),
		Telefono:  strings.TrimSpace(nuevo.Telefono),
		WhatsApp:  whatsapp,
		Email:     nuevo.Email,
		Direccion: nuevo.Direccion,
		RFC:       nuevo.RFC,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if customer.Nombre == "" || customer.Telefono == "" {
		return "", domain.ErrInvalidInput
	}
	if err := repo.Create(ctx, customer); err != nil {
		return "", err
	}
	return customer.ID, nil
}

// resolveVehicle devuelve el id del vehículo a usar: el existente tal cual o
// el de un alta inline. Antes de insertar verifica que la placa no esté en
// uso por otro vehículo activo; el kilometraje por defecto es 0 y el
// propietario queda ligado al cliente resuelto.
func resolveVehicle(ctx context.Context, repo repository.VehicleRepository, existingID *string, nuevo *dto.NuevoVehiculoInput, customerID string) (string, error) {
	if existingID != nil && *existingID != "" {
		return *existingID, nil
	}
	if nuevo == nil {
		return "", domain.ErrInvalidInput
	}
	placa := strings.TrimSpace(nuevo.PlacaActual)
	if nuevo.Marca == "" || nuevo.Modelo == "" || placa == "" {
		return "", domain.ErrInvalidInput
	}
	inUse, err := repo.PlateInUse(ctx, placa, "")
	if err != nil {
		return "", err
	}
	if inUse {
		return "", domain.ErrDuplicatePlate
	}
	km := 0
	if nuevo.Kilometraje != nil {
		km = *nuevo.Kilometraje
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:          uuid.New().String(),
		VIN:         nuevo.VIN,
		Marca:       nuevo.Marca,
		Modelo:      nuevo.Modelo,
		Anio:        nuevo.Anio,
		Color:       nuevo.Color,
		PlacaActual: placa,
		Kilometraje: km,
		CustomerID:  &customerID,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, vehicle); err != nil {
		return "", err
	}
	return vehicle.ID, nil
}
