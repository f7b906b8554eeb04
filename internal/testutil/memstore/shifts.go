package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

var (
	_ repository.ShiftRepository      = (*ShiftRepo)(nil)
	_ repository.AssignmentRepository = (*AssignmentRepo)(nil)
	_ repository.GuardRoleRepository  = (*GuardRoleRepo)(nil)
)

// ShiftRepo guardias en memoria.
type ShiftRepo struct{ b backend }

func (r *ShiftRepo) Create(_ context.Context, shift *entity.Shift) error {
	return r.b.write(func(st *state) error {
		shift.ID = st.nextID()
		stored := *shift
		stored.Assignments = nil
		st.shifts[shift.ID] = stored
		return nil
	})
}

func (r *ShiftRepo) GetByID(_ context.Context, id int64) (*entity.Shift, error) {
	var out *entity.Shift
	r.b.read(func(st *state) {
		if v, ok := st.shifts[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *ShiftRepo) Update(_ context.Context, shift *entity.Shift) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.shifts[shift.ID]; !ok {
			return domain.ErrNotFound
		}
		stored := *shift
		stored.Assignments = nil
		st.shifts[shift.ID] = stored
		return nil
	})
}

// Delete borra la guardia y sus asignaciones, como el ON DELETE CASCADE de la tabla.
func (r *ShiftRepo) Delete(_ context.Context, id int64) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.shifts[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.shifts, id)
		kept := st.assignments[:0:0]
		for _, a := range st.assignments {
			if a.ShiftID != id {
				kept = append(kept, a)
			}
		}
		st.assignments = kept
		return nil
	})
}

func (r *ShiftRepo) ExistsOverlap(_ context.Context, delegationID int64, start, end time.Time, excludeID int64) (bool, error) {
	found := false
	r.b.read(func(st *state) {
		for id, s := range st.shifts {
			if id == excludeID || s.DelegationID != delegationID {
				continue
			}
			if schedule.Overlaps(s.Start, s.End, start, end) {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r *ShiftRepo) ListByDelegation(_ context.Context, delegationID int64, dr schedule.DateRange) ([]*entity.Shift, error) {
	var out []*entity.Shift
	r.b.read(func(st *state) {
		for _, s := range st.shifts {
			if s.DelegationID == delegationID && dr.Contains(s.Start) {
				out = append(out, &s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// AssignmentRepo asignaciones en memoria con las mismas restricciones únicas que la tabla.
type AssignmentRepo struct{ b backend }

func (r *AssignmentRepo) ReplaceForShift(_ context.Context, shiftID int64, items []entity.ShiftAssignment) error {
	return r.b.write(func(st *state) error {
		kept := st.assignments[:0:0]
		for _, a := range st.assignments {
			if a.ShiftID != shiftID {
				kept = append(kept, a)
			}
		}
		users := map[int64]bool{}
		roles := map[int64]bool{}
		for _, it := range items {
			if users[it.UserID] || roles[it.GuardRoleID] {
				return domain.ErrDuplicateAssignment
			}
			users[it.UserID], roles[it.GuardRoleID] = true, true
			it.ID = st.nextID()
			it.ShiftID = shiftID
			it.User, it.GuardRole = nil, nil
			kept = append(kept, it)
		}
		st.assignments = kept
		return nil
	})
}

func (r *AssignmentRepo) ListByShift(_ context.Context, shiftID int64) ([]*entity.ShiftAssignment, error) {
	var out []*entity.ShiftAssignment
	r.b.read(func(st *state) {
		for _, a := range st.assignments {
			if a.ShiftID != shiftID {
				continue
			}
			if u, ok := st.users[a.UserID]; ok {
				a.User = &u
			}
			if g, ok := st.guardRoles[a.GuardRoleID]; ok {
				a.GuardRole = &g
			}
			out = append(out, &a)
		}
	})
	return out, nil
}

func (r *AssignmentRepo) ListByUser(_ context.Context, userID int64, dr schedule.DateRange) ([]*entity.UserShift, error) {
	var out []*entity.UserShift
	r.b.read(func(st *state) {
		for _, a := range st.assignments {
			if a.UserID != userID {
				continue
			}
			s, ok := st.shifts[a.ShiftID]
			if !ok || !dr.Contains(s.Start) {
				continue
			}
			out = append(out, &entity.UserShift{
				AssignmentID: a.ID,
				Shift:        s,
				GuardRole:    st.guardRoles[a.GuardRoleID],
			})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Shift.Start.Before(out[j].Shift.Start) })
	return out, nil
}

// GuardRoleRepo catálogo de roles de guardia en memoria.
type GuardRoleRepo struct{ b backend }

func (r *GuardRoleRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*entity.GuardRole, error) {
	out := make(map[int64]*entity.GuardRole, len(ids))
	r.b.read(func(st *state) {
		for _, id := range ids {
			if v, ok := st.guardRoles[id]; ok {
				out[id] = &v
			}
		}
	})
	return out, nil
}

func (r *GuardRoleRepo) List(_ context.Context) ([]*entity.GuardRole, error) {
	var out []*entity.GuardRole
	r.b.read(func(st *state) {
		for _, v := range st.guardRoles {
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
