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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, nombre, telefono, whatsapp, email, direccion, rfc, created_at, updated_at`

// Create persiste un nuevo cliente. Teléfono duplicado -> ErrDuplicatePhone.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, nombre, telefono, whatsapp, email, direccion, rfc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Telefono, c.WhatsApp, c.Email, c.Direccion, c.RFC,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePhone
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID (nil si no existe).
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get customer")
}

// GetByPhone obtiene un cliente por teléfono exacto (nil si no existe).
func (r *CustomerRepo) GetByPhone(ctx context.Context, telefono string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE telefono = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, telefono), "get customer by phone")
}

// Search busca por nombre (parcial, sin mayúsculas) y/o teléfono (parcial).
func (r *CustomerRepo) Search(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := []any{}
	if f.Nombre != "" {
		args = append(args, "%"+f.Nombre+"%")
		query += fmt.Sprintf(" AND nombre ILIKE $%d", len(args))
	}
	if f.Telefono != "" {
		args = append(args, "%"+f.Telefono+"%")
		query += fmt.Sprintf(" AND telefono LIKE $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY nombre LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualización parcial: solo los campos presentes en el patch.
func (r *CustomerRepo) Update(ctx context.Context, id string, patch repository.CustomerPatch) error {
	b := newUpdate("customers")
	setOpt(b, "nombre", patch.Nombre)
	setOpt(b, "telefono", patch.Telefono)
	setOpt(b, "whatsapp", patch.WhatsApp)
	setOpt(b, "email", patch.Email)
	setOpt(b, "direccion", patch.Direccion)
	setOpt(b, "rfc", patch.RFC)
	if b.Empty() {
		return domain.ErrInvalidInput
	}
	b.SetRaw("updated_at = now()")

	query, args := b.SQL("id = ?", id)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePhone
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID. El caso de uso verifica antes que no
// tenga vehículos activos.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) scanOne(row pgx.Row, op string) (*entity.Customer, error) {
	var c entity.Customer
	if err := scanCustomer(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func scanCustomer(row pgx.Row, c *entity.Customer) error {
	return row.Scan(&c.ID, &c.Nombre, &c.Telefono, &c.WhatsApp, &c.Email, &c.Direccion, &c.RFC,
		&c.CreatedAt, &c.UpdatedAt)
}
