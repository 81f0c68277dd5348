package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación de ServiceRepository (usable con pool o tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, vehicle_id, customer_id, mechanic_id, branch_id, opportunity_id,
		tipo_servicio, descripcion, precio, estado, fecha_servicio, created_at, updated_at`

// Create persiste una orden de servicio.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, vehicle_id, customer_id, mechanic_id, branch_id, opportunity_id,
			tipo_servicio, descripcion, precio, estado, fecha_servicio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.VehicleID, s.CustomerID, s.MechanicID, s.BranchID, s.OpportunityID,
		s.TipoServicio, s.Descripcion, s.Precio, s.Estado, s.FechaServicio,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID (nil si no existe).
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	var s entity.Service
	if err := scanService(r.q.QueryRow(ctx, query, id), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// GetDetail orden con cliente, vehículo y mecánico resueltos.
func (r *ServiceRepo) GetDetail(ctx context.Context, id string) (*entity.ServiceDetail, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	d := &entity.ServiceDetail{Service: *s}
	if d.Customer, err = NewCustomerRepository(r.q).GetByID(ctx, s.CustomerID); err != nil {
		return nil, err
	}
	if d.Vehicle, err = NewVehicleRepository(r.q).GetByID(ctx, s.VehicleID); err != nil {
		return nil, err
	}
	if s.MechanicID != nil {
		if d.Mechanic, err = NewMechanicRepository(r.q).GetByID(ctx, *s.MechanicID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// List lista órdenes con filtros opcionales.
func (r *ServiceRepo) List(ctx context.Context, f repository.ServiceFilter) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE 1=1`
	args := []any{}
	if f.Estado != "" {
		args = append(args, f.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.VehicleID != "" {
		args = append(args, f.VehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}
	if f.Fecha != nil {
		args = append(args, *f.Fecha)
		query += fmt.Sprintf(" AND fecha_servicio::date = $%d::date", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := scanService(rows, &s); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado de la orden.
func (r *ServiceRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE services SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update service estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanService(row pgx.Row, s *entity.Service) error {
	return row.Scan(
		&s.ID, &s.VehicleID, &s.CustomerID, &s.MechanicID, &s.BranchID, &s.OpportunityID,
		&s.TipoServicio, &s.Descripcion, &s.Precio, &s.Estado, &s.FechaServicio,
		&s.CreatedAt, &s.UpdatedAt,
	)
}
