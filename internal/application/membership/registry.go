// Package membership gestiona equipos y sus miembros dentro de las delegaciones.
package membership

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/policy"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

// MaxTeamNameLen coincide con equipos.nombre_equipo.
const MaxTeamNameLen = 120

// CreateTeamCommand entrada para crear un equipo.
type CreateTeamCommand struct {
	Name         string
	DelegationID int64
}

// UpdateTeamCommand campos opcionales de edición de equipo.
type UpdateTeamCommand struct {
	Name         *string
	DelegationID *int64
}

// Registry casos de uso de equipos y miembros.
type Registry struct {
	policy         *authz.RolePolicy
	teamRepo       repository.TeamRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	delegationRepo repository.DelegationRepository
}

// NewRegistry construye el registro de equipos.
func NewRegistry(
	rolePolicy *authz.RolePolicy,
	teamRepo repository.TeamRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	delegationRepo repository.DelegationRepository,
) *Registry {
	return &Registry{
		policy:         rolePolicy,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		delegationRepo: delegationRepo,
	}
}

// CreateTeam (solo administradores) crea un equipo en una delegación existente.
func (r *Registry) CreateTeam(ctx context.Context, caller entity.Caller, cmd CreateTeamCommand) (*entity.Team, error) {
	if err := r.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	name, err := validTeamName(cmd.Name)
	if err != nil {
		return nil, err
	}
	if err := r.ensureDelegation(ctx, cmd.DelegationID); err != nil {
		return nil, err
	}
	team := &entity.Team{Name: name, DelegationID: cmd.DelegationID}
	if err := r.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// UpdateTeam (solo administradores). Cambiar de delegación no revalida a los miembros existentes.
func (r *Registry) UpdateTeam(ctx context.Context, caller entity.Caller, teamID int64, cmd UpdateTeamCommand) (*entity.Team, error) {
	if err := r.policy.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	team, err := r.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	if cmd.Name != nil {
		name, err := validTeamName(*cmd.Name)
		if err != nil {
			return nil, err
		}
		team.Name = name
	}
	if cmd.DelegationID != nil && *cmd.DelegationID != team.DelegationID {
		if err := r.ensureDelegation(ctx, *cmd.DelegationID); err != nil {
			return nil, err
		}
		team.DelegationID = *cmd.DelegationID
	}
	if err := r.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam devuelve el equipo con sus miembros.
func (r *Registry) GetTeam(ctx context.Context, caller entity.Caller, teamID int64) (*entity.Team, error) {
	team, err := r.ScopedTeam(ctx, caller, teamID)
	if err != nil {
		return nil, err
	}
	team.Members, err = r.membershipRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	return team, nil
}

// ListTeams: los administradores pueden filtrar por delegación (nil = todas);
// el resto ve siempre la suya.
func (r *Registry) ListTeams(ctx context.Context, caller entity.Caller, delegationID *int64) ([]*entity.Team, error) {
	capability, err := r.policy.CapabilityOf(ctx, caller.RoleID)
	if err != nil {
		return nil, err
	}
	if capability != policy.Admin {
		own := caller.DelegationID
		delegationID = &own
	}
	return r.teamRepo.List(ctx, delegationID)
}

// AddMember incorpora un usuario a un equipo de su misma delegación.
func (r *Registry) AddMember(ctx context.Context, caller entity.Caller, teamID, userID int64) (*entity.Membership, error) {
	team, err := r.ScopedTeam(ctx, caller, teamID)
	if err != nil {
		return nil, err
	}
	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownUser, userID)
	}
	if user.DelegationID != team.DelegationID {
		return nil, domain.ErrCrossDelegationViolation
	}
	return r.membershipRepo.Add(ctx, team.ID, user.ID)
}

// RemoveMember quita un usuario del equipo. ErrNotFound si no era miembro.
func (r *Registry) RemoveMember(ctx context.Context, caller entity.Caller, teamID, userID int64) error {
	team, err := r.ScopedTeam(ctx, caller, teamID)
	if err != nil {
		return err
	}
	removed, err := r.membershipRepo.Remove(ctx, team.ID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

// ListMembers devuelve los miembros en orden de alta.
func (r *Registry) ListMembers(ctx context.Context, caller entity.Caller, teamID int64) ([]*entity.User, error) {
	team, err := r.ScopedTeam(ctx, caller, teamID)
	if err != nil {
		return nil, err
	}
	return r.membershipRepo.ListMembers(ctx, team.ID)
}

// ScopedTeam resuelve un equipo exigiendo supervisor o administrador y, salvo administradores,
// que el equipo sea de la delegación de quien llama.
func (r *Registry) ScopedTeam(ctx context.Context, caller entity.Caller, teamID int64) (*entity.Team, error) {
	capability, err := r.policy.Require(ctx, caller, policy.Supervisor)
	if err != nil {
		return nil, err
	}
	team, err := r.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.Scoped(capability, caller, team.DelegationID) {
		return nil, domain.ErrForbidden
	}
	return team, nil
}

func (r *Registry) ensureDelegation(ctx context.Context, id int64) error {
	d, err := r.delegationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("%w: %d", domain.ErrUnknownDelegation, id)
	}
	return nil
}

func validTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > MaxTeamNameLen {
		return "", fmt.Errorf("%w: nombre_equipo", domain.ErrInvalidInput)
	}
	return name, nil
}
