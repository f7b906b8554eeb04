package usecase

import (
	"context"

	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

// RoleUseCase administración del catálogo de roles de usuario.
type RoleUseCase struct {
	policy *authz.RolePolicy
	repo   repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(rolePolicy *authz.RolePolicy, repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{policy: rolePolicy, repo: repo}
}

// List devuelve los roles ordenados por nombre.
func (uc *RoleUseCase) List(ctx context.Context, caller entity.Caller) ([]dto.CatalogItem, error) {
	if err := uc.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	roles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItem, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleFromEntity(r))
	}
	return out, nil
}

// Update renombra un rol. Cambiar el código altera la capacidad que concede.
func (uc *RoleUseCase) Update(ctx context.Context, caller entity.Caller, id int64, in dto.UpdateRoleRequest) (*dto.CatalogItem, error) {
	if err := uc.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	if in.Codigo != nil {
		role.Code = *in.Codigo
	}
	if in.Nombre != nil {
		role.Name = *in.Nombre
	}
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	out := dto.RoleFromEntity(role)
	return &out, nil
}
