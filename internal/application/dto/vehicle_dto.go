package dto

import (
	"strings"
	"time"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// NuevoVehiculoInput datos de alta de vehículo (directa o inline en recepción).
type NuevoVehiculoInput struct {
	VIN         *string `json:"vin"`
	Marca       string  `json:"marca"`
	Modelo      string  `json:"modelo"`
	Anio        int     `json:"año"`
	Color       *string `json:"color"`
	PlacaActual string  `json:"placa_actual"`
	Kilometraje *int    `json:"kilometraje"`
}

// Validate valida los campos obligatorios del vehículo nuevo.
func (in *NuevoVehiculoInput) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(in.Marca) == "" {
		errs = append(errs, FieldError{Field: "marca", Message: "la marca es requerida"})
	}
	if strings.TrimSpace(in.Modelo) == "" {
		errs = append(errs, FieldError{Field: "modelo", Message: "el modelo es requerido"})
	}
	if strings.TrimSpace(in.PlacaActual) == "" {
		errs = append(errs, FieldError{Field: "placa_actual", Message: "la placa es requerida"})
	}
	return errs
}

// VehiclePatchRequest actualización parcial (la placa va por cambio de placa).
type VehiclePatchRequest struct {
	Marca       *string `json:"marca"`
	Modelo      *string `json:"modelo"`
	Anio        *int    `json:"año"`
	Color       *string `json:"color"`
	Kilometraje *int    `json:"kilometraje"`
	CustomerID  *string `json:"customer_id"`
}

// ChangePlateRequest cambio de placa con registro en historial.
type ChangePlateRequest struct {
	PlacaNueva string  `json:"placa_nueva"`
	Motivo     *string `json:"motivo"`
}

// VehicleResponse vehículo en respuestas de la API.
type VehicleResponse struct {
	ID          string    `json:"id"`
	VIN         *string   `json:"vin,omitempty"`
	Marca       string    `json:"marca"`
	Modelo      string    `json:"modelo"`
	Anio        int       `json:"año"`
	Color       *string   `json:"color,omitempty"`
	PlacaActual string    `json:"placa_actual"`
	Kilometraje int       `json:"kilometraje"`
	CustomerID  *string   `json:"customer_id,omitempty"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
}

// VehicleFromEntity mapea la entidad a la respuesta.
func VehicleFromEntity(v *entity.Vehicle) *VehicleResponse {
	if v == nil {
		return nil
	}
	return &VehicleResponse{
		ID:          v.ID,
		VIN:         v.VIN,
		Marca:       v.Marca,
		Modelo:      v.Modelo,
		Anio:        v.Anio,
		Color:       v.Color,
		PlacaActual: v.PlacaActual,
		Kilometraje: v.Kilometraje,
		CustomerID:  v.CustomerID,
		Activo:      v.Activo,
		CreatedAt:   v.CreatedAt,
	}
}

// PlateHistoryResponse entrada del historial de placas.
type PlateHistoryResponse struct {
	ID            string    `json:"id"`
	PlacaAnterior string    `json:"placa_anterior"`
	PlacaNueva    string    `json:"placa_nueva"`
	Motivo        *string   `json:"motivo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
