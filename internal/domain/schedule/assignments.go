package schedule

import (
	"fmt"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// AssignmentInput es una línea del lote de asignaciones de una guardia.
type AssignmentInput struct {
	UserID      int64
	GuardRoleID int64
}

// CheckDuplicates rechaza lotes con un usuario repetido o un rol de guardia repetido.
func CheckDuplicates(items []AssignmentInput) error {
	users := make(map[int64]struct{}, len(items))
	roles := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if _, ok := users[it.UserID]; ok {
			return fmt.Errorf("%w: usuario %d repetido", domain.ErrDuplicateAssignment, it.UserID)
		}
		if _, ok := roles[it.GuardRoleID]; ok {
			return fmt.Errorf("%w: rol de guardia %d repetido", domain.ErrDuplicateAssignment, it.GuardRoleID)
		}
		users[it.UserID] = struct{}{}
		roles[it.GuardRoleID] = struct{}{}
	}
	return nil
}

// UserIDs devuelve los ids de usuario del lote en orden.
func UserIDs(items []AssignmentInput) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.UserID)
	}
	return ids
}

// GuardRoleIDs devuelve los ids de rol de guardia del lote en orden.
func GuardRoleIDs(items []AssignmentInput) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.GuardRoleID)
	}
	return ids
}

// ValidateAssignments aplica, en orden, las reglas de consistencia del lote contra
// los usuarios y roles de guardia ya resueltos:
// duplicados, usuarios desconocidos, delegación distinta, roles desconocidos.
func ValidateAssignments(
	delegationID int64,
	items []AssignmentInput,
	users map[int64]*entity.User,
	guardRoles map[int64]*entity.GuardRole,
) error {
	if err := CheckDuplicates(items); err != nil {
		return err
	}
	for _, it := range items {
		if users[it.UserID] == nil {
			return fmt.Errorf("%w: %d", domain.ErrUnknownUser, it.UserID)
		}
	}
	for _, it := range items {
		if users[it.UserID].DelegationID != delegationID {
			return fmt.Errorf("%w: usuario %d", domain.ErrCrossDelegationAssignment, it.UserID)
		}
	}
	for _, it := range items {
		if guardRoles[it.GuardRoleID] == nil {
			return fmt.Errorf("%w: %d", domain.ErrUnknownGuardRole, it.GuardRoleID)
		}
	}
	return nil
}

// ToAssignments construye las filas a insertar para la guardia.
func ToAssignments(shiftID int64, items []AssignmentInput) []entity.ShiftAssignment {
	out := make([]entity.ShiftAssignment, 0, len(items))
	for _, it := range items {
		out = append(out, entity.ShiftAssignment{
			ShiftID:     shiftID,
			UserID:      it.UserID,
			GuardRoleID: it.GuardRoleID,
		})
	}
	return out
}
