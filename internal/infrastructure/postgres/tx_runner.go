package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/henry-diagnostics/taller-api/internal/application/reception"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

var _ reception.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Toda la
// secuencia multi-statement ocupa una sola conexión del pool, que se libera
// en cualquier salida (commit o rollback).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. El Rollback diferido es inocuo tras un Commit exitoso.
func (r *TxRunner) Run(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	oppRepo repository.OpportunityRepository,
	serviceRepo repository.ServiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	customerRepo := NewCustomerRepository(tx)
	vehicleRepo := NewVehicleRepository(tx)
	oppRepo := NewOpportunityRepository(tx)
	serviceRepo := NewServiceRepository(tx)

	if err := fn(customerRepo, vehicleRepo, oppRepo, serviceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
