package entity

import "time"

// Customer representa un cliente del taller.
// El teléfono es único: es la llave de contacto para seguimiento y WhatsApp.
type Customer struct {
	ID        string
	Nombre    string
	Telefono  string // único
	WhatsApp  string // por defecto igual al teléfono
	Email     *string
	Direccion *string
	RFC       *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
