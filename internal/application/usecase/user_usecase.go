package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/guardias-api/internal/application/auth"
	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios: gestión por administradores y perfil propio.
type UserUseCase struct {
	policy         *authz.RolePolicy
	repo           repository.UserRepository
	roleRepo       repository.RoleRepository
	delegationRepo repository.DelegationRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(
	rolePolicy *authz.RolePolicy,
	repo repository.UserRepository,
	roleRepo repository.RoleRepository,
	delegationRepo repository.DelegationRepository,
) *UserUseCase {
	return &UserUseCase{policy: rolePolicy, repo: repo, roleRepo: roleRepo, delegationRepo: delegationRepo}
}

// Create da de alta un usuario. Queda marcado para cambiar la contraseña en el primer acceso.
func (uc *UserUseCase) Create(ctx context.Context, caller entity.Caller, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := uc.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, &in.RolID, &in.DelegacionID); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	active := true
	if in.Activo != nil {
		active = *in.Activo
	}
	user := &entity.User{
		FirstName:     strings.TrimSpace(in.Nombre),
		LastName:      strings.TrimSpace(in.Apellidos),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:  hash,
		RoleID:        in.RolID,
		DelegationID:  in.DelegacionID,
		Active:        active,
		RequiresReset: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Update edita un usuario. Una contraseña nueva quita la marca de cambio obligatorio.
func (uc *UserUseCase) Update(ctx context.Context, caller entity.Caller, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := uc.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkRefs(ctx, in.RolID, in.DelegacionID); err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		user.FirstName = strings.TrimSpace(*in.Nombre)
	}
	if in.Apellidos != nil {
		user.LastName = strings.TrimSpace(*in.Apellidos)
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.RolID != nil {
		user.RoleID = *in.RolID
	}
	if in.DelegacionID != nil {
		user.DelegationID = *in.DelegacionID
	}
	if in.Activo != nil {
		user.Active = *in.Activo
	}
	if in.RequiereReset != nil {
		user.RequiresReset = *in.RequiereReset
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		user.RequiresReset = false
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Me devuelve el perfil de quien llama.
func (uc *UserUseCase) Me(ctx context.Context, caller entity.Caller) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// UpdateMe edita nombre y apellidos propios.
func (uc *UserUseCase) UpdateMe(ctx context.Context, caller entity.Caller, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		user.FirstName = strings.TrimSpace(*in.Nombre)
	}
	if in.Apellidos != nil {
		user.LastName = strings.TrimSpace(*in.Apellidos)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// ChangePassword exige la contraseña actual.
func (uc *UserUseCase) ChangePassword(ctx context.Context, caller entity.Caller, in dto.ChangePasswordRequest) error {
	user, err := uc.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, in.PasswordActual) {
		return fmt.Errorf("%w: contraseña actual incorrecta", domain.ErrInvalidInput)
	}
	hash, err := auth.HashPassword(in.PasswordNueva)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.RequiresReset = false
	user.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, user)
}

func (uc *UserUseCase) checkRefs(ctx context.Context, roleID, delegationID *int64) error {
	if roleID != nil {
		role, err := uc.roleRepo.GetByID(ctx, *roleID)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("%w: rol %d", domain.ErrInvalidInput, *roleID)
		}
	}
	if delegationID != nil {
		d, err := uc.delegationRepo.GetByID(ctx, *delegationID)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("%w: %d", domain.ErrUnknownDelegation, *delegationID)
		}
	}
	return nil
}
