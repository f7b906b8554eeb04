package repository

import (
	"context"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// TeamRepository define el puerto de persistencia para equipos.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id int64) (*entity.Team, error)
	Update(ctx context.Context, team *entity.Team) error
	// List ordena por nombre; delegationID nil lista todas.
	List(ctx context.Context, delegationID *int64) ([]*entity.Team, error)
}

// MembershipRepository define el puerto para la tabla de miembros de equipo.
type MembershipRepository interface {
	// Add devuelve domain.ErrConflict si el par ya existe.
	Add(ctx context.Context, teamID, userID int64) (*entity.Membership, error)
	// Remove devuelve false si el par no existía.
	Remove(ctx context.Context, teamID, userID int64) (bool, error)
	// ListMembers devuelve los usuarios en orden de alta.
	ListMembers(ctx context.Context, teamID int64) ([]*entity.User, error)
}
