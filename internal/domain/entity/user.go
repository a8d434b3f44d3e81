package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleCajero  = "cajero"
	RoleTecnico = "tecnico"
)

// User es un usuario del sistema (cajero, técnico o administrador).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
