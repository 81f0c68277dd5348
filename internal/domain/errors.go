package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrCustomerNotFound    = errors.New("cliente no encontrado")
	ErrVehicleNotFound     = errors.New("vehículo no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrDuplicatePhone      = errors.New("ya existe un cliente con ese teléfono")
	ErrDuplicatePlate      = errors.New("la placa ya está registrada en otro vehículo activo")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrAlreadyConverted    = errors.New("la oportunidad ya fue convertida a servicio")
	ErrSinCita             = errors.New("la oportunidad no tiene cita agendada")
	ErrCitaIncompleta      = errors.New("la cita no tiene vehículo o cliente asignado; use el flujo walk-in")
	ErrCustomerHasVehicles = errors.New("el cliente tiene vehículos activos asociados")
)
