package entity

import "time"

// Mechanic personal técnico del taller (dato de referencia, asignable a servicios).
type Mechanic struct {
	ID           string
	Nombre       string
	Especialidad *string
	BranchID     *string
	Activo       bool
	CreatedAt    time.Time
}

// Branch sucursal del taller.
type Branch struct {
	ID        string
	Nombre    string
	Direccion *string
	Telefono  *string
	CreatedAt time.Time
}
