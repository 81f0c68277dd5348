package repository

import (
	"context"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// CustomerPatch campos opcionales para actualización parcial (nil = no tocar).
type CustomerPatch struct {
	Nombre    *string
	Telefono  *string
	WhatsApp  *string
	Email     *string
	Direccion *string
	RFC       *string
}

// CustomerFilter filtros de búsqueda de clientes.
type CustomerFilter struct {
	Nombre   string // coincidencia parcial, insensible a mayúsculas
	Telefono string // coincidencia parcial
	Limit    int
	Offset   int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, telefono string) (*entity.Customer, error)
	Search(ctx context.Context, f CustomerFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, id string, patch CustomerPatch) error
	Delete(ctx context.Context, id string) error
}
