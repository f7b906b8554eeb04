package repository

import (
	"context"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia del catálogo de roles de usuario.
type RoleRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
}
