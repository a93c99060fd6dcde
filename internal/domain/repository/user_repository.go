package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// UserRepository acceso a usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}

// PerfilRepository acceso a perfiles (tenants).
type PerfilRepository interface {
	Create(perfil *entity.Perfil) error
	GetByID(id string) (*entity.Perfil, error)
	GetByNombre(nombre string) (*entity.Perfil, error)
}
