package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleAsesor   = "asesor"
	RoleMecanico = "mecanico"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Role         string // admin, asesor, mecanico
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
