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

// MechanicUseCase datos de referencia del personal técnico y sucursales.
type MechanicUseCase struct {
	repo       repository.MechanicRepository
	branchRepo repository.BranchRepository
}

// NewMechanicUseCase construye el caso de uso.
func NewMechanicUseCase(repo repository.MechanicRepository, branchRepo repository.BranchRepository) *MechanicUseCase {
	return &MechanicUseCase{repo: repo, branchRepo: branchRepo}
}

// Create registra un mecánico.
func (uc *MechanicUseCase) Create(ctx context.Context, in dto.CreateMechanicRequest) (*dto.MechanicResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BranchID != nil {
		branch, err := uc.branchRepo.GetByID(ctx, *in.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, domain.ErrInvalidInput
		}
	}
	m := &entity.Mechanic{
		ID:           uuid.New().String(),
		Nombre:       strings.TrimSpace(in.Nombre),
		Especialidad: in.Especialidad,
		BranchID:     in.BranchID,
		Activo:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return dto.MechanicFromEntity(m), nil
}

// List mecánicos activos (o todos).
func (uc *MechanicUseCase) List(ctx context.Context, soloActivos bool) ([]*dto.MechanicResponse, error) {
	list, err := uc.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MechanicResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MechanicFromEntity(m))
	}
	return out, nil
}

// ListBranches sucursales del taller.
func (uc *MechanicUseCase) ListBranches(ctx context.Context) ([]*dto.BranchResponse, error) {
	list, err := uc.branchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BranchFromEntity(b))
	}
	return out, nil
}
