package repository

import (
	"context"
	"time"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

// ShiftRepository define el puerto de persistencia para guardias.
// Las escrituras deben ejecutarse dentro de la sección crítica de la delegación (ver TxRunner).
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id int64) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	// Delete devuelve domain.ErrNotFound si la guardia no existe.
	Delete(ctx context.Context, id int64) error
	// ExistsOverlap busca guardias de la delegación con existing.start < end AND start < existing.end,
	// ignorando excludeID (0 = ninguna).
	ExistsOverlap(ctx context.Context, delegationID int64, start, end time.Time, excludeID int64) (bool, error)
	// ListByDelegation ordena por inicio ascendente; no carga asignaciones.
	ListByDelegation(ctx context.Context, delegationID int64, r schedule.DateRange) ([]*entity.Shift, error)
}

// AssignmentRepository define el puerto para las asignaciones de guardia.
type AssignmentRepository interface {
	// ReplaceForShift borra el conjunto actual e inserta el nuevo. Debe ir en la misma
	// transacción que las validaciones.
	ReplaceForShift(ctx context.Context, shiftID int64, items []entity.ShiftAssignment) error
	// ListByShift incluye usuario y rol de guardia.
	ListByShift(ctx context.Context, shiftID int64) ([]*entity.ShiftAssignment, error)
	// ListByUser ordena por inicio de guardia ascendente.
	ListByUser(ctx context.Context, userID int64, r schedule.DateRange) ([]*entity.UserShift, error)
}

// GuardRoleRepository define el puerto del catálogo de roles de guardia.
type GuardRoleRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*entity.GuardRole, error)
	List(ctx context.Context) ([]*entity.GuardRole, error)
}
