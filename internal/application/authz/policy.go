// Package authz resuelve la capacidad de quien llama a partir del catálogo de roles
// y aplica las comprobaciones de rol y de delegación comunes a todos los casos de uso.
package authz

import (
	"context"
	"fmt"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/policy"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

// RolePolicy no guarda estado propio: cada comprobación consulta el catálogo.
type RolePolicy struct {
	roleRepo repository.RoleRepository
}

// NewRolePolicy construye la política con el repositorio de roles.
func NewRolePolicy(roleRepo repository.RoleRepository) *RolePolicy {
	return &RolePolicy{roleRepo: roleRepo}
}

// CapabilityOf devuelve la capacidad asociada al rol. ErrRoleNotFound si el id no existe.
func (p *RolePolicy) CapabilityOf(ctx context.Context, roleID int64) (policy.Capability, error) {
	role, err := p.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return 0, err
	}
	if role == nil {
		return 0, fmt.Errorf("%w: %d", domain.ErrRoleNotFound, roleID)
	}
	return policy.FromRoleCode(role.Code), nil
}

// Require exige al menos la capacidad min.
func (p *RolePolicy) Require(ctx context.Context, caller entity.Caller, min policy.Capability) (policy.Capability, error) {
	capability, err := p.CapabilityOf(ctx, caller.RoleID)
	if err != nil {
		return 0, err
	}
	if !capability.AtLeast(min) {
		return capability, domain.ErrForbidden
	}
	return capability, nil
}

// RequireAdmin exige rol ADMIN.
func (p *RolePolicy) RequireAdmin(ctx context.Context, caller entity.Caller) error {
	_, err := p.Require(ctx, caller, policy.Admin)
	return err
}

// RequireSupervisorOrAdmin exige rol SUPERVISOR o ADMIN.
func (p *RolePolicy) RequireSupervisorOrAdmin(ctx context.Context, caller entity.Caller) error {
	_, err := p.Require(ctx, caller, policy.Supervisor)
	return err
}

// CanAccessDelegation: los administradores acceden a cualquier delegación; el resto solo a la suya.
func (p *RolePolicy) CanAccessDelegation(ctx context.Context, caller entity.Caller, delegationID int64) (bool, error) {
	capability, err := p.CapabilityOf(ctx, caller.RoleID)
	if err != nil {
		return false, err
	}
	return Scoped(capability, caller, delegationID), nil
}

// Scoped aplica la regla de delegación con una capacidad ya resuelta.
func Scoped(capability policy.Capability, caller entity.Caller, delegationID int64) bool {
	return capability == policy.Admin || caller.DelegationID == delegationID
}
