package scheduling

import (
	"context"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

// TxRunner ejecuta fn dentro de una transacción serializada por delegación:
// dos llamadas concurrentes con el mismo delegationID nunca se intercalan.
// Los repositorios recibidos están atados a esa transacción.
type TxRunner interface {
	RunInDelegation(ctx context.Context, delegationID int64, fn func(
		shiftRepo repository.ShiftRepository,
		assignmentRepo repository.AssignmentRepository,
		userRepo repository.UserRepository,
		guardRoleRepo repository.GuardRoleRepository,
	) error) error
}

// RosterPDFGenerator genera el cuadrante de guardias de una delegación.
type RosterPDFGenerator interface {
	GenerateRoster(delegation *entity.Delegation, period schedule.DateRange, shifts []*entity.Shift) ([]byte, error)
}
