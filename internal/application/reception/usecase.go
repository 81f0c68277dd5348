// Package reception implementa el núcleo del taller: el flujo
// oportunidad → cita → servicio, incluida la atención de clientes walk-in.
// Toda operación multi-statement corre dentro de una transacción única con
// rollback garantizado ante cualquier error.
package reception

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// ServicioGeneral descripción por defecto cuando el cliente no la da.
const ServicioGeneral = "Servicio general"

// UseCase casos de uso de recepción. Los repos inyectados van atados al pool
// (lecturas fuera de transacción); el TxRunner provee las versiones
// transaccionales dentro de cada flujo.
type UseCase struct {
	tx          TxRunner
	serviceRepo repository.ServiceRepository
}

// NewUseCase construye el caso de uso de recepción.
func NewUseCase(tx TxRunner, serviceRepo repository.ServiceRepository) *UseCase {
	return &UseCase{tx: tx, serviceRepo: serviceRepo}
}

// firstNonEmpty devuelve la primera cadena con contenido tras recortar espacios.
func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil {
			if s := strings.TrimSpace(*v); s != "" {
				return s
			}
		}
	}
	return ""
}

// priceOrZero devuelve el primer precio presente, o cero.
func priceOrZero(values ...*decimal.Decimal) decimal.Decimal {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return decimal.Zero
}

func strPtr(s string) *string { return &s }
