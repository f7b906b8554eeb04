package leave

import (
	"context"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios de permisos atados a ella.
type TxRunner interface {
	RunLeave(ctx context.Context, fn func(
		leaveRepo repository.LeaveRequestRepository,
		catalogRepo repository.LeaveCatalogRepository,
	) error) error
}

// TeamScope resuelve un equipo aplicando la visibilidad por delegación (membership.Registry).
type TeamScope interface {
	ScopedTeam(ctx context.Context, caller entity.Caller, teamID int64) (*entity.Team, error)
}
