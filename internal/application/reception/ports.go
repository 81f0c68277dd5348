package reception

import (
	"context"

	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma
// transacción. Cualquier error del callback provoca rollback completo; el
// commit solo ocurre si el callback termina sin error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		vehicleRepo repository.VehicleRepository,
		oppRepo repository.OpportunityRepository,
		serviceRepo repository.ServiceRepository,
	) error) error
}
