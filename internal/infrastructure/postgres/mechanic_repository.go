package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

var _ repository.MechanicRepository = (*MechanicRepo)(nil)
var _ repository.BranchRepository = (*BranchRepo)(nil)

// MechanicRepo datos de referencia del personal técnico.
type MechanicRepo struct {
	q Querier
}

// NewMechanicRepository construye el adaptador.
func NewMechanicRepository(q Querier) *MechanicRepo {
	return &MechanicRepo{q: q}
}

// Create registra un mecánico.
func (r *MechanicRepo) Create(ctx context.Context, m *entity.Mechanic) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO mechanics (id, nombre, especialidad, branch_id, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.Nombre, m.Especialidad, m.BranchID, m.Activo, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mechanic: %w", err)
	}
	return nil
}

// GetByID obtiene un mecánico (nil si no existe).
func (r *MechanicRepo) GetByID(ctx context.Context, id string) (*entity.Mechanic, error) {
	var m entity.Mechanic
	err := r.q.QueryRow(ctx, `
		SELECT id, nombre, especialidad, branch_id, activo, created_at
		FROM mechanics WHERE id = $1`, id).
		Scan(&m.ID, &m.Nombre, &m.Especialidad, &m.BranchID, &m.Activo, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mechanic: %w", err)
	}
	return &m, nil
}

// List mecánicos, opcionalmente solo activos.
func (r *MechanicRepo) List(ctx context.Context, soloActivos bool) ([]*entity.Mechanic, error) {
	query := `SELECT id, nombre, especialidad, branch_id, activo, created_at FROM mechanics`
	if soloActivos {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list mechanics: %w", err)
	}
	defer rows.Close()
	var list []*entity.Mechanic
	for rows.Next() {
		var m entity.Mechanic
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Especialidad, &m.BranchID, &m.Activo, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mechanic: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// BranchRepo sucursales (solo lectura desde la API).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// GetByID obtiene una sucursal (nil si no existe).
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	var b entity.Branch
	err := r.q.QueryRow(ctx, `
		SELECT id, nombre, direccion, telefono, created_at FROM branches WHERE id = $1`, id).
		Scan(&b.ID, &b.Nombre, &b.Direccion, &b.Telefono, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// List todas las sucursales.
func (r *BranchRepo) List(ctx context.Context) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, direccion, telefono, created_at FROM branches ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Nombre, &b.Direccion, &b.Telefono, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
