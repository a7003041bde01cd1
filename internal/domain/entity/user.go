package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RoleAdmin       = "admin"
	RolePlanner     = "planner"
	RoleAlmacenista = "almacenista"
)

// User usuario de la aplicación. PasswordHash es bcrypt, nunca se expone en respuestas.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         string // admin | planner | almacenista
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
