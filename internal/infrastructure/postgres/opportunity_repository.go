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

var _ repository.OpportunityRepository = (*OpportunityRepo)(nil)

// OpportunityRepo implementación de OpportunityRepository (usable con pool o tx).
type OpportunityRepo struct {
	q Querier
}

// NewOpportunityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOpportunityRepository(q Querier) *OpportunityRepo {
	return &OpportunityRepo{q: q}
}

const opportunityColumns = `id, vehicle_id, customer_id, branch_id, estado, prioridad,
		servicio_sugerido, descripcion, precio_estimado,
		tiene_cita, origen_cita, cita_fecha, cita_hora, cita_descripcion_breve,
		cita_nombre_contacto, cita_telefono_contacto,
		converted_to_service_id, usuario_creador, created_at, updated_at`

// Create persiste una oportunidad nueva.
func (r *OpportunityRepo) Create(ctx context.Context, o *entity.Opportunity) error {
	query := `
		INSERT INTO opportunities (id, vehicle_id, customer_id, branch_id, estado, prioridad,
			servicio_sugerido, descripcion, precio_estimado,
			tiene_cita, origen_cita, cita_fecha, cita_hora, cita_descripcion_breve,
			cita_nombre_contacto, cita_telefono_contacto,
			converted_to_service_id, usuario_creador, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.VehicleID, o.CustomerID, o.BranchID, o.Estado, o.Prioridad,
		o.ServicioSugerido, o.Descripcion, o.PrecioEstimado,
		o.TieneCita, o.OrigenCita, o.CitaFecha, o.CitaHora, o.CitaDescripcionBreve,
		o.CitaNombreContacto, o.CitaTelefonoContacto,
		o.ConvertedToServiceID, o.UsuarioCreador, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert opportunity: %w", err)
	}
	return nil
}

// GetByID obtiene una oportunidad por ID (nil si no existe).
func (r *OpportunityRepo) GetByID(ctx context.Context, id string) (*entity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`
	var o entity.Opportunity
	if err := scanOpportunity(r.q.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	return &o, nil
}

// GetDetail oportunidad con cliente y vehículo (LEFT JOIN: pueden faltar).
func (r *OpportunityRepo) GetDetail(ctx context.Context, id string) (*entity.OpportunityDetail, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	d := &entity.OpportunityDetail{Opportunity: *o}
	if o.CustomerID != nil {
		if d.Customer, err = NewCustomerRepository(r.q).GetByID(ctx, *o.CustomerID); err != nil {
			return nil, err
		}
	}
	if o.VehicleID != nil {
		if d.Vehicle, err = NewVehicleRepository(r.q).GetByID(ctx, *o.VehicleID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// List lista oportunidades con filtros opcionales.
func (r *OpportunityRepo) List(ctx context.Context, f repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE 1=1`
	args := []any{}
	if f.Estado != "" {
		args = append(args, f.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if f.Prioridad != "" {
		args = append(args, f.Prioridad)
		query += fmt.Sprintf(" AND prioridad = $%d", len(args))
	}
	if f.ConCita != nil {
		args = append(args, *f.ConCita)
		query += fmt.Sprintf(" AND tiene_cita = $%d", len(args))
	}
	if f.CitaFecha != nil {
		args = append(args, *f.CitaFecha)
		query += fmt.Sprintf(" AND cita_fecha = $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Opportunity
	for rows.Next() {
		var o entity.Opportunity
		if err := scanOpportunity(rows, &o); err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualización parcial con el builder.
func (r *OpportunityRepo) Update(ctx context.Context, id string, patch repository.OpportunityPatch) error {
	b := newUpdate("opportunities")
	setOpt(b, "estado", patch.Estado)
	setOpt(b, "prioridad", patch.Prioridad)
	setOpt(b, "servicio_sugerido", patch.ServicioSugerido)
	setOpt(b, "descripcion", patch.Descripcion)
	setOpt(b, "precio_estimado", patch.PrecioEstimado)
	setOpt(b, "vehicle_id", patch.VehicleID)
	setOpt(b, "customer_id", patch.CustomerID)
	if b.Empty() {
		return domain.ErrInvalidInput
	}
	b.SetRaw("updated_at = now()")

	query, args := b.SQL("id = ?", id)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateEstado cambia solo el estado.
func (r *OpportunityRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE opportunities SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update opportunity estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetCita marca la cita sobre la oportunidad y pasa el estado a agendado.
func (r *OpportunityRepo) SetCita(ctx context.Context, id string, cita repository.CitaUpdate) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE opportunities SET
			tiene_cita = true,
			origen_cita = $2,
			cita_fecha = $3,
			cita_hora = $4,
			cita_descripcion_breve = $5,
			cita_nombre_contacto = $6,
			cita_telefono_contacto = $7,
			estado = $8,
			updated_at = now()
		WHERE id = $1`,
		id, cita.Origen, cita.Fecha, cita.Hora, cita.DescripcionBreve,
		cita.NombreContacto, cita.TelefonoContacto, entity.OppAgendado,
	)
	if err != nil {
		return fmt.Errorf("set cita: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkConverted escritura única de converted_to_service_id: el UPDATE
// condicional solo afecta la fila si la columna sigue en NULL, así dos
// peticiones concurrentes no pueden convertir la misma oportunidad dos veces.
func (r *OpportunityRepo) MarkConverted(ctx context.Context, id, serviceID, customerID, vehicleID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE opportunities SET
			converted_to_service_id = $2,
			customer_id = $3,
			vehicle_id = $4,
			tiene_cita = false,
			estado = $5,
			updated_at = now()
		WHERE id = $1 AND converted_to_service_id IS NULL`,
		id, serviceID, customerID, vehicleID, entity.OppEnProceso,
	)
	if err != nil {
		return false, fmt.Errorf("mark converted: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanOpportunity(row pgx.Row, o *entity.Opportunity) error {
	return row.Scan(
		&o.ID, &o.VehicleID, &o.CustomerID, &o.BranchID, &o.Estado, &o.Prioridad,
		&o.ServicioSugerido, &o.Descripcion, &o.PrecioEstimado,
		&o.TieneCita, &o.OrigenCita, &o.CitaFecha, &o.CitaHora, &o.CitaDescripcionBreve,
		&o.CitaNombreContacto, &o.CitaTelefonoContacto,
		&o.ConvertedToServiceID, &o.UsuarioCreador, &o.CreatedAt, &o.UpdatedAt,
	)
}
