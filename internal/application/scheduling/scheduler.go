// Package scheduling implementa el planificador de guardias: invariante de no solapamiento
// por delegación, consistencia de asignaciones y listados.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/policy"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

// ErrPDFUnavailable se devuelve si el servicio se construyó sin generador de PDF.
var ErrPDFUnavailable = errors.New("generador de cuadrante no configurado")

// Scheduler casos de uso de guardias.
type Scheduler struct {
	txRunner       TxRunner
	policy         *authz.RolePolicy
	shiftRepo      repository.ShiftRepository
	assignmentRepo repository.AssignmentRepository
	guardRoleRepo  repository.GuardRoleRepository
	delegationRepo repository.DelegationRepository
	pdf            RosterPDFGenerator
}

// NewScheduler construye el caso de uso. pdf puede ser nil.
func NewScheduler(
	txRunner TxRunner,
	rolePolicy *authz.RolePolicy,
	shiftRepo repository.ShiftRepository,
	assignmentRepo repository.AssignmentRepository,
	guardRoleRepo repository.GuardRoleRepository,
	delegationRepo repository.DelegationRepository,
	pdf RosterPDFGenerator,
) *Scheduler {
	return &Scheduler{
		txRunner:       txRunner,
		policy:         rolePolicy,
		shiftRepo:      shiftRepo,
		assignmentRepo: assignmentRepo,
		guardRoleRepo:  guardRoleRepo,
		delegationRepo: delegationRepo,
		pdf:            pdf,
	}
}

// ProposeShift crea una guardia si no solapa con otra de la misma delegación.
// La comprobación y la inserción ocurren dentro de la sección crítica de la delegación.
func (s *Scheduler) ProposeShift(ctx context.Context, caller entity.Caller, cmd ProposeShiftCommand) (*entity.Shift, error) {
	if err := schedule.ValidateShiftRange(cmd.Start, cmd.End); err != nil {
		return nil, err
	}
	capability, err := s.policy.Require(ctx, caller, policy.Supervisor)
	if err != nil {
		return nil, err
	}
	delegationID := caller.DelegationID
	if cmd.DelegationID != nil {
		delegationID = *cmd.DelegationID
	}
	if !authz.Scoped(capability, caller, delegationID) {
		return nil, domain.ErrForbidden
	}
	status, err := normalizeStatus(cmd.Status, entity.DefaultShiftStatus)
	if err != nil {
		return nil, err
	}
	if delegationID != caller.DelegationID {
		d, err := s.delegationRepo.GetByID(ctx, delegationID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, domain.ErrUnknownDelegation
		}
	}

	var created *entity.Shift
	err = s.txRunner.RunInDelegation(ctx, delegationID, func(
		shiftRepo repository.ShiftRepository,
		assignmentRepo repository.AssignmentRepository,
		userRepo repository.UserRepository,
		guardRoleRepo repository.GuardRoleRepository,
	) error {
		overlap, err := shiftRepo.ExistsOverlap(ctx, delegationID, cmd.Start, cmd.End, 0)
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrOverlapConflict
		}
		now := time.Now()
		shift := &entity.Shift{
			DelegationID: delegationID,
			Start:        cmd.Start,
			End:          cmd.End,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := shiftRepo.Create(ctx, shift); err != nil {
			return err
		}
		if len(cmd.Assignments) > 0 {
			if err := replaceAssignments(ctx, shift, cmd.Assignments, assignmentRepo, userRepo, guardRoleRepo); err != nil {
				return err
			}
		}
		created = shift
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RescheduleShift aplica los campos informados. Intervalo y asignaciones se validan y
// escriben en la misma transacción: o se aplica todo o nada.
func (s *Scheduler) RescheduleShift(ctx context.Context, caller entity.Caller, shiftID int64, cmd UpdateShiftCommand) (*entity.Shift, error) {
	current, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.requireShiftWriter(ctx, caller, current.DelegationID); err != nil {
		return nil, err
	}
	var status *string
	if cmd.Status != nil {
		st, err := normalizeStatus(cmd.Status, current.Status)
		if err != nil {
			return nil, err
		}
		status = &st
	}

	var updated *entity.Shift
	err = s.txRunner.RunInDelegation(ctx, current.DelegationID, func(
		shiftRepo repository.ShiftRepository,
		assignmentRepo repository.AssignmentRepository,
		userRepo repository.UserRepository,
		guardRoleRepo repository.GuardRoleRepository,
	) error {
		// Releer dentro de la sección crítica: puede haber cambiado o desaparecido.
		shift, err := shiftRepo.GetByID(ctx, shiftID)
		if err != nil {
			return err
		}
		if shift == nil {
			return domain.ErrNotFound
		}
		start, end := schedule.Resolve(shift.Start, shift.End, cmd.Start, cmd.End)
		if err := schedule.ValidateShiftRange(start, end); err != nil {
			return err
		}
		overlap, err := shiftRepo.ExistsOverlap(ctx, shift.DelegationID, start, end, shift.ID)
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrOverlapConflict
		}
		shift.Start, shift.End = start, end
		if status != nil {
			shift.Status = *status
		}
		shift.UpdatedAt = time.Now()
		if err := shiftRepo.Update(ctx, shift); err != nil {
			return err
		}
		if cmd.Assignments != nil {
			if err := replaceAssignments(ctx, shift, *cmd.Assignments, assignmentRepo, userRepo, guardRoleRepo); err != nil {
				return err
			}
		} else {
			shift.Assignments, err = assignmentRepo.ListByShift(ctx, shift.ID)
			if err != nil {
				return err
			}
		}
		updated = shift
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteShift elimina la guardia y, en cascada, sus asignaciones.
func (s *Scheduler) DeleteShift(ctx context.Context, caller entity.Caller, shiftID int64) error {
	current, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if err := s.requireShiftWriter(ctx, caller, current.DelegationID); err != nil {
		return err
	}
	return s.txRunner.RunInDelegation(ctx, current.DelegationID, func(
		shiftRepo repository.ShiftRepository,
		_ repository.AssignmentRepository,
		_ repository.UserRepository,
		_ repository.GuardRoleRepository,
	) error {
		return shiftRepo.Delete(ctx, shiftID)
	})
}

// GetShift devuelve la guardia con sus asignaciones.
func (s *Scheduler) GetShift(ctx context.Context, caller entity.Caller, shiftID int64) (*entity.Shift, error) {
	capability, err := s.policy.CapabilityOf(ctx, caller.RoleID)
	if err != nil {
		return nil, err
	}
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNotFound
	}
	if !canRead(capability, caller, shift.DelegationID) {
		return nil, domain.ErrForbidden
	}
	shift.Assignments, err = s.assignmentRepo.ListByShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// ListShiftsForDelegation lista las guardias de la delegación (por defecto la de quien llama)
// cuyo inicio cae en el rango, ordenadas por inicio.
func (s *Scheduler) ListShiftsForDelegation(ctx context.Context, caller entity.Caller, delegationID *int64, r schedule.DateRange) ([]*entity.Shift, error) {
	target, err := s.readableDelegation(ctx, caller, delegationID)
	if err != nil {
		return nil, err
	}
	return s.shiftRepo.ListByDelegation(ctx, target, r)
}

// ListShiftsForUser lista las guardias asignadas a quien llama, con su rol de guardia.
func (s *Scheduler) ListShiftsForUser(ctx context.Context, caller entity.Caller, r schedule.DateRange) ([]*entity.UserShift, error) {
	return s.assignmentRepo.ListByUser(ctx, caller.UserID, r)
}

// NextShift devuelve la primera guardia asignada con inicio >= now.
func (s *Scheduler) NextShift(ctx context.Context, caller entity.Caller, now time.Time) (*entity.UserShift, error) {
	list, err := s.assignmentRepo.ListByUser(ctx, caller.UserID, schedule.DateRange{From: &now})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	next := list[0]
	for _, us := range list[1:] {
		if us.Shift.Start.Before(next.Shift.Start) {
			next = us
		}
	}
	return next, nil
}

// ListGuardRoles devuelve el catálogo de roles de guardia.
func (s *Scheduler) ListGuardRoles(ctx context.Context) ([]*entity.GuardRole, error) {
	return s.guardRoleRepo.List(ctx)
}

// RosterPDF genera el cuadrante en PDF de las guardias de la delegación en el rango.
func (s *Scheduler) RosterPDF(ctx context.Context, caller entity.Caller, delegationID *int64, r schedule.DateRange) ([]byte, error) {
	if s.pdf == nil {
		return nil, ErrPDFUnavailable
	}
	target, err := s.readableDelegation(ctx, caller, delegationID)
	if err != nil {
		return nil, err
	}
	delegation, err := s.delegationRepo.GetByID(ctx, target)
	if err != nil {
		return nil, err
	}
	if delegation == nil {
		return nil, domain.ErrNotFound
	}
	shifts, err := s.shiftRepo.ListByDelegation(ctx, target, r)
	if err != nil {
		return nil, err
	}
	for _, sh := range shifts {
		sh.Assignments, err = s.assignmentRepo.ListByShift(ctx, sh.ID)
		if err != nil {
			return nil, err
		}
	}
	return s.pdf.GenerateRoster(delegation, r, shifts)
}

// requireShiftWriter: administrador, o supervisor de la delegación de la guardia.
func (s *Scheduler) requireShiftWriter(ctx context.Context, caller entity.Caller, delegationID int64) error {
	capability, err := s.policy.Require(ctx, caller, policy.Supervisor)
	if err != nil {
		return err
	}
	if !authz.Scoped(capability, caller, delegationID) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Scheduler) readableDelegation(ctx context.Context, caller entity.Caller, delegationID *int64) (int64, error) {
	capability, err := s.policy.CapabilityOf(ctx, caller.RoleID)
	if err != nil {
		return 0, err
	}
	target := caller.DelegationID
	if delegationID != nil {
		target = *delegationID
	}
	if !canRead(capability, caller, target) {
		return 0, domain.ErrForbidden
	}
	return target, nil
}

// canRead: los técnicos solo leen su delegación; supervisores y administradores, cualquiera.
func canRead(capability policy.Capability, caller entity.Caller, delegationID int64) bool {
	return capability.AtLeast(policy.Supervisor) || caller.DelegationID == delegationID
}

func normalizeStatus(in *string, fallback string) (string, error) {
	if in == nil {
		return fallback, nil
	}
	st := strings.TrimSpace(*in)
	if st == "" {
		return fallback, nil
	}
	if len([]rune(st)) > entity.MaxShiftStatusLen {
		return "", fmt.Errorf("%w: estado admite como máximo %d caracteres", domain.ErrInvalidInput, entity.MaxShiftStatusLen)
	}
	return st, nil
}

// replaceAssignments valida el lote completo antes de tocar la tabla y luego
// sustituye el conjunto de la guardia.
func replaceAssignments(
	ctx context.Context,
	shift *entity.Shift,
	items []schedule.AssignmentInput,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	guardRoleRepo repository.GuardRoleRepository,
) error {
	if err := schedule.CheckDuplicates(items); err != nil {
		return err
	}
	users, err := userRepo.GetByIDs(ctx, schedule.UserIDs(items))
	if err != nil {
		return err
	}
	guardRoles, err := guardRoleRepo.GetByIDs(ctx, schedule.GuardRoleIDs(items))
	if err != nil {
		return err
	}
	if err := schedule.ValidateAssignments(shift.DelegationID, items, users, guardRoles); err != nil {
		return err
	}
	if err := assignmentRepo.ReplaceForShift(ctx, shift.ID, schedule.ToAssignments(shift.ID, items)); err != nil {
		return err
	}
	shift.Assignments, err = assignmentRepo.ListByShift(ctx, shift.ID)
	return err
}
