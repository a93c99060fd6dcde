package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolContador = "contador"
)

// User usuario de la aplicación; pertenece a un perfil (tenant).
type User struct {
	ID           string
	PerfilID     string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string
	Estado       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
