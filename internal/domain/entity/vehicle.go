package entity

import "time"

// Vehicle representa un vehículo identificado por VIN.
// La placa es única solo entre vehículos activos; los cambios de placa se
// registran en PlateHistory (append-only), nunca se sobrescribe el historial.
type Vehicle struct {
	ID          string
	VIN         *string // llave de negocio; puede faltar en altas walk-in
	Marca       string
	Modelo      string
	Anio        int
	Color       *string
	PlacaActual string
	Kilometraje int
	CustomerID  *string // propietario, opcional
	Activo      bool    // baja lógica
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlateHistory registro append-only de cambios de placa de un vehículo.
type PlateHistory struct {
	ID            string
	VehicleID     string
	PlacaAnterior string
	PlacaNueva    string
	Motivo        *string
	CreatedAt     time.Time
}
