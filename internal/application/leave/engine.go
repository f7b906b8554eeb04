// Package leave implementa el ciclo de vida de los permisos:
// PENDIENTE pasa a APROBADO, RECHAZADO o CANCELADO, y no hay vuelta atrás.
package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

// ErrPendingStatusMissing indica que el catálogo no tiene el estado inicial sembrado.
var ErrPendingStatusMissing = errors.New("no existe el estado PENDIENTE en la base de datos")

// RequestLeaveCommand entrada para solicitar un permiso propio.
type RequestLeaveCommand struct {
	TypeID int64
	Start  time.Time
	End    time.Time
	Notes  *string
}

// DecideLeaveCommand entrada para decidir un permiso. Notes nil conserva las observaciones.
type DecideLeaveCommand struct {
	StatusID int64
	Notes    *string
}

// Engine casos de uso de permisos.
type Engine struct {
	txRunner    TxRunner
	policy      *authz.RolePolicy
	leaveRepo   repository.LeaveRequestRepository
	catalogRepo repository.LeaveCatalogRepository
	teams       TeamScope
}

// NewEngine construye el motor de permisos.
func NewEngine(
	txRunner TxRunner,
	rolePolicy *authz.RolePolicy,
	leaveRepo repository.LeaveRequestRepository,
	catalogRepo repository.LeaveCatalogRepository,
	teams TeamScope,
) *Engine {
	return &Engine{
		txRunner:    txRunner,
		policy:      rolePolicy,
		leaveRepo:   leaveRepo,
		catalogRepo: catalogRepo,
		teams:       teams,
	}
}

// RequestLeave crea un permiso de quien llama en estado PENDIENTE.
// No se comprueba solapamiento con otros permisos ni con guardias.
func (e *Engine) RequestLeave(ctx context.Context, caller entity.Caller, cmd RequestLeaveCommand) (*entity.LeaveRequest, error) {
	if err := schedule.ValidateLeaveRange(cmd.Start, cmd.End); err != nil {
		return nil, err
	}
	if err := validNotes(cmd.Notes); err != nil {
		return nil, err
	}
	leaveType, err := e.catalogRepo.GetTypeByID(ctx, cmd.TypeID)
	if err != nil {
		return nil, err
	}
	if leaveType == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownLeaveType, cmd.TypeID)
	}
	pending, err := e.catalogRepo.GetStatusByCode(ctx, entity.LeaveStatusPending)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, ErrPendingStatusMissing
	}
	now := time.Now()
	req := &entity.LeaveRequest{
		UserID:    caller.UserID,
		TypeID:    leaveType.ID,
		StatusID:  pending.ID,
		Start:     cmd.Start,
		End:       cmd.End,
		Notes:     cmd.Notes,
		CreatedBy: caller.UserID,
		CreatedAt: now,
		UpdatedAt: now,
		Type:      leaveType,
		Status:    pending,
	}
	if err := e.leaveRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecideLeave lleva un permiso PENDIENTE a un estado final. La fila queda bloqueada
// durante la decisión; el perdedor de dos decisiones simultáneas recibe ErrInvalidTransition.
func (e *Engine) DecideLeave(ctx context.Context, caller entity.Caller, requestID int64, cmd DecideLeaveCommand) (*entity.LeaveRequest, error) {
	if err := e.policy.RequireSupervisorOrAdmin(ctx, caller); err != nil {
		return nil, err
	}
	if err := validNotes(cmd.Notes); err != nil {
		return nil, err
	}
	var decided *entity.LeaveRequest
	err := e.txRunner.RunLeave(ctx, func(
		leaveRepo repository.LeaveRequestRepository,
		catalogRepo repository.LeaveCatalogRepository,
	) error {
		req, err := leaveRepo.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status == nil || req.Status.IsTerminal() {
			code := ""
			if req.Status != nil {
				code = req.Status.Code
			}
			return fmt.Errorf("%w: el permiso está en estado %s", domain.ErrInvalidTransition, code)
		}
		pendingID := req.StatusID

		next, err := catalogRepo.GetStatusByID(ctx, cmd.StatusID)
		if err != nil {
			return err
		}
		if next == nil || !entity.IsKnownLeaveStatus(next.Code) {
			return fmt.Errorf("%w: %d", domain.ErrUnknownStatus, cmd.StatusID)
		}
		if !next.IsTerminal() {
			return fmt.Errorf("%w: no se puede volver a PENDIENTE", domain.ErrInvalidTransition)
		}

		decidedBy := caller.UserID
		req.StatusID = next.ID
		req.Status = next
		req.DecidedBy = &decidedBy
		if cmd.Notes != nil {
			req.Notes = cmd.Notes
		}
		req.UpdatedAt = time.Now()
		ok, err := leaveRepo.Decide(ctx, req, pendingID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el permiso ya fue decidido", domain.ErrInvalidTransition)
		}
		decided = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// GetLeaveRequest: el propietario, o un supervisor o administrador.
func (e *Engine) GetLeaveRequest(ctx context.Context, caller entity.Caller, requestID int64) (*entity.LeaveRequest, error) {
	req, err := e.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.UserID == caller.UserID {
		return req, nil
	}
	if err := e.policy.RequireSupervisorOrAdmin(ctx, caller); err != nil {
		return nil, err
	}
	return req, nil
}

// ListOwnLeaveRequests lista los permisos de quien llama, más recientes primero.
func (e *Engine) ListOwnLeaveRequests(ctx context.Context, caller entity.Caller, f repository.LeaveFilter) ([]*entity.LeaveRequest, error) {
	return e.leaveRepo.ListByUser(ctx, caller.UserID, f)
}

// ListTeamLeaveRequests lista los permisos de los miembros de un equipo visible para quien llama.
func (e *Engine) ListTeamLeaveRequests(ctx context.Context, caller entity.Caller, teamID int64, year *int) ([]*entity.LeaveRequest, error) {
	team, err := e.teams.ScopedTeam(ctx, caller, teamID)
	if err != nil {
		return nil, err
	}
	return e.leaveRepo.ListByTeam(ctx, team.ID, year)
}

// ListLeaveTypes catálogo de tipos ordenado por nombre.
func (e *Engine) ListLeaveTypes(ctx context.Context) ([]*entity.LeaveType, error) {
	return e.catalogRepo.ListTypes(ctx)
}

// ListLeaveStatuses catálogo de estados ordenado por nombre.
func (e *Engine) ListLeaveStatuses(ctx context.Context) ([]*entity.LeaveStatus, error) {
	return e.catalogRepo.ListStatuses(ctx)
}

func validNotes(notes *string) error {
	if notes != nil && len([]rune(*notes)) > entity.MaxLeaveNotesLen {
		return fmt.Errorf("%w: observaciones admite como máximo %d caracteres", domain.ErrInvalidInput, entity.MaxLeaveNotesLen)
	}
	return nil
}
