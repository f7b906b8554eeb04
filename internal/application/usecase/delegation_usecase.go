package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

// DelegationUseCase administración de delegaciones (solo administradores).
type DelegationUseCase struct {
	policy *authz.RolePolicy
	repo   repository.DelegationRepository
}

// NewDelegationUseCase construye el caso de uso.
func NewDelegationUseCase(rolePolicy *authz.RolePolicy, repo repository.DelegationRepository) *DelegationUseCase {
	return &DelegationUseCase{policy: rolePolicy, repo: repo}
}

// Create da de alta una delegación. ErrConflict si el nombre ya existe.
func (uc *DelegationUseCase) Create(ctx context.Context, caller entity.Caller, in dto.CreateDelegationRequest) (*dto.DelegationResponse, error) {
	if err := uc.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	d := &entity.Delegation{
		Name:        strings.TrimSpace(in.Nombre),
		Code:        in.Codigo,
		CountryCode: upper(in.PaisCode),
		RegionCode:  in.RegionCode,
		Active:      in.Activo == nil || *in.Activo,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	out := dto.DelegationFromEntity(d)
	return &out, nil
}

// List devuelve las delegaciones ordenadas por nombre.
func (uc *DelegationUseCase) List(ctx context.Context, caller entity.Caller) ([]dto.DelegationResponse, error) {
	if err := uc.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DelegationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DelegationFromEntity(d))
	}
	return out, nil
}

// Update edita los campos informados.
func (uc *DelegationUseCase) Update(ctx context.Context, caller entity.Caller, id int64, in dto.UpdateDelegationRequest) (*dto.DelegationResponse, error) {
	if err := uc.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		d.Name = strings.TrimSpace(*in.Nombre)
	}
	if in.Codigo != nil {
		d.Code = in.Codigo
	}
	if in.PaisCode != nil {
		d.CountryCode = upper(in.PaisCode)
	}
	if in.RegionCode != nil {
		d.RegionCode = in.RegionCode
	}
	if in.Activo != nil {
		d.Active = *in.Activo
	}
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	out := dto.DelegationFromEntity(d)
	return &out, nil
}

func upper(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(*s)
	return &v
}
