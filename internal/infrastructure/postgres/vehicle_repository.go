package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, vin, marca, modelo, anio, color, placa_actual, kilometraje, customer_id, activo, created_at, updated_at`

// Create persiste un vehículo nuevo. VIN o placa duplicados se distinguen por
// el constraint violado.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, vin, marca, modelo, anio, color, placa_actual, kilometraje, customer_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.VIN, v.Marca, v.Modelo, v.Anio, v.Color, v.PlacaActual,
		v.Kilometraje, v.CustomerID, v.Activo, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if name := uniqueConstraint(err); name != "" {
			if name == "vehicles_placa_activa_idx" {
				return domain.ErrDuplicatePlate
			}
			return domain.ErrDuplicate // vin duplicado
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID (nil si no existe).
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get vehicle")
}

// GetByVIN obtiene un vehículo por VIN (nil si no existe).
func (r *VehicleRepo) GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vin = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, vin), "get vehicle by vin")
}

// Search busca vehículos por VIN, placa o propietario.
func (r *VehicleRepo) Search(ctx context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	args := []any{}
	if f.VIN != "" {
		args = append(args, "%"+f.VIN+"%")
		query += fmt.Sprintf(" AND vin ILIKE $%d", len(args))
	}
	if f.Placa != "" {
		args = append(args, "%"+f.Placa+"%")
		query += fmt.Sprintf(" AND placa_actual ILIKE $%d", len(args))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.SoloActivos {
		query += " AND activo = true"
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualización parcial (la placa se cambia solo vía ChangePlate).
func (r *VehicleRepo) Update(ctx context.Context, id string, patch repository.VehiclePatch) error {
	b := newUpdate("vehicles")
	setOpt(b, "marca", patch.Marca)
	setOpt(b, "modelo", patch.Modelo)
	setOpt(b, "anio", patch.Anio)
	setOpt(b, "color", patch.Color)
	setOpt(b, "kilometraje", patch.Kilometraje)
	setOpt(b, "customer_id", patch.CustomerID)
	if b.Empty() {
		return domain.ErrInvalidInput
	}
	b.SetRaw("updated_at = now()")

	query, args := b.SQL("id = ?", id)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica del vehículo (libera la placa para reuso).
func (r *VehicleRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE vehicles SET activo = false, updated_at = now() WHERE id = $1 AND activo = true`, id)
	if err != nil {
		return fmt.Errorf("deactivate vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PlateInUse indica si la placa está en uso por algún vehículo activo distinto
// de excludeVehicleID.
func (r *VehicleRepo) PlateInUse(ctx context.Context, placa, excludeVehicleID string) (bool, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM vehicles WHERE placa_actual = $1 AND activo = true AND id <> $2`,
		placa, excludeVehicleID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check plate: %w", err)
	}
	return count > 0, nil
}

// ChangePlate actualiza la placa y agrega la entrada al historial append-only.
// Debe ejecutarse dentro de una transacción (dos statements).
func (r *VehicleRepo) ChangePlate(ctx context.Context, vehicleID, placaNueva string, motivo *string) error {
	var placaAnterior string
	err := r.q.QueryRow(ctx, `SELECT placa_actual FROM vehicles WHERE id = $1`, vehicleID).Scan(&placaAnterior)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrVehicleNotFound
		}
		return fmt.Errorf("get plate: %w", err)
	}

	_, err = r.q.Exec(ctx,
		`UPDATE vehicles SET placa_actual = $2, updated_at = now() WHERE id = $1`,
		vehicleID, placaNueva)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePlate
		}
		return fmt.Errorf("update plate: %w", err)
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO vehicle_plate_history (id, vehicle_id, placa_anterior, placa_nueva, motivo, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		uuid.New().String(), vehicleID, placaAnterior, placaNueva, motivo)
	if err != nil {
		return fmt.Errorf("insert plate history: %w", err)
	}
	return nil
}

// ListPlateHistory historial de placas, más reciente primero.
func (r *VehicleRepo) ListPlateHistory(ctx context.Context, vehicleID string) ([]*entity.PlateHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, vehicle_id, placa_anterior, placa_nueva, motivo, created_at
		FROM vehicle_plate_history WHERE vehicle_id = $1 ORDER BY created_at DESC`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list plate history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PlateHistory
	for rows.Next() {
		var h entity.PlateHistory
		if err := rows.Scan(&h.ID, &h.VehicleID, &h.PlacaAnterior, &h.PlacaNueva, &h.Motivo, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plate history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// CountActiveByCustomer vehículos activos de un cliente (guarda de borrado).
func (r *VehicleRepo) CountActiveByCustomer(ctx context.Context, customerID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM vehicles WHERE customer_id = $1 AND activo = true`,
		customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count vehicles by customer: %w", err)
	}
	return count, nil
}

func (r *VehicleRepo) scanOne(row pgx.Row, op string) (*entity.Vehicle, error) {
	var v entity.Vehicle
	if err := scanVehicle(row, &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

func scanVehicle(row pgx.Row, v *entity.Vehicle) error {
	return row.Scan(&v.ID, &v.VIN, &v.Marca, &v.Modelo, &v.Anio, &v.Color, &v.PlacaActual,
		&v.Kilometraje, &v.CustomerID, &v.Activo, &v.CreatedAt, &v.UpdatedAt)
}
