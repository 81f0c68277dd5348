package repository

import (
	"context"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// MechanicRepository personal técnico (dato de referencia).
type MechanicRepository interface {
	Create(ctx context.Context, m *entity.Mechanic) error
	GetByID(ctx context.Context, id string) (*entity.Mechanic, error)
	List(ctx context.Context, soloActivos bool) ([]*entity.Mechanic, error)
}

// BranchRepository sucursales (dato de referencia).
type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context) ([]*entity.Branch, error)
}
