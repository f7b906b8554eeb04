package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

var (
	_ repository.LeaveRequestRepository = (*LeaveRepo)(nil)
	_ repository.LeaveCatalogRepository = (*CatalogRepo)(nil)
)

// LeaveRepo permisos en memoria.
type LeaveRepo struct{ b backend }

func (r *LeaveRepo) Create(_ context.Context, req *entity.LeaveRequest) error {
	return r.b.write(func(st *state) error {
		req.ID = st.nextID()
		st.leaves[req.ID] = stripLeave(*req)
		return nil
	})
}

func (r *LeaveRepo) GetByID(_ context.Context, id int64) (*entity.LeaveRequest, error) {
	var out *entity.LeaveRequest
	r.b.read(func(st *state) {
		if v, ok := st.leaves[id]; ok {
			out = hydrateLeave(st, v, false)
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: la transacción en memoria ya es exclusiva.
func (r *LeaveRepo) GetForUpdate(ctx context.Context, id int64) (*entity.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *LeaveRepo) Decide(_ context.Context, req *entity.LeaveRequest, expectedStatusID int64) (bool, error) {
	ok := false
	err := r.b.write(func(st *state) error {
		cur, found := st.leaves[req.ID]
		if !found {
			return domain.ErrNotFound
		}
		if cur.StatusID != expectedStatusID {
			return nil
		}
		cur.StatusID = req.StatusID
		cur.DecidedBy = req.DecidedBy
		cur.Notes = req.Notes
		cur.UpdatedAt = req.UpdatedAt
		st.leaves[req.ID] = cur
		ok = true
		return nil
	})
	return ok, err
}

func (r *LeaveRepo) ListByUser(_ context.Context, userID int64, f repository.LeaveFilter) ([]*entity.LeaveRequest, error) {
	var out []*entity.LeaveRequest
	r.b.read(func(st *state) {
		for _, v := range st.leaves {
			if v.UserID != userID || !matchLeave(v, f) {
				continue
			}
			out = append(out, hydrateLeave(st, v, false))
		}
	})
	sortLeaves(out)
	return out, nil
}

func (r *LeaveRepo) ListByTeam(_ context.Context, teamID int64, year *int) ([]*entity.LeaveRequest, error) {
	var out []*entity.LeaveRequest
	r.b.read(func(st *state) {
		members := memberIDs(st, teamID)
		for _, v := range st.leaves {
			if _, ok := members[v.UserID]; !ok || !matchLeave(v, repository.LeaveFilter{Year: year}) {
				continue
			}
			out = append(out, hydrateLeave(st, v, true))
		}
	})
	sortLeaves(out)
	return out, nil
}

func matchLeave(v entity.LeaveRequest, f repository.LeaveFilter) bool {
	if f.Year != nil {
		from, to := schedule.YearRange(*f.Year)
		if v.Start.Before(from) || !v.Start.Before(to) {
			return false
		}
	}
	if f.TypeID != nil && v.TypeID != *f.TypeID {
		return false
	}
	if f.StatusID != nil && v.StatusID != *f.StatusID {
		return false
	}
	return true
}

func sortLeaves(list []*entity.LeaveRequest) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Start.Equal(list[j].Start) {
			return list[i].ID > list[j].ID
		}
		return list[i].Start.After(list[j].Start)
	})
}

func stripLeave(v entity.LeaveRequest) entity.LeaveRequest {
	v.Type, v.Status, v.User = nil, nil, nil
	return v
}

func hydrateLeave(st *state, v entity.LeaveRequest, withUser bool) *entity.LeaveRequest {
	if t, ok := st.leaveTypes[v.TypeID]; ok {
		v.Type = &t
	}
	if s, ok := st.leaveStatuses[v.StatusID]; ok {
		v.Status = &s
	}
	if withUser {
		if u, ok := st.users[v.UserID]; ok {
			v.User = &u
		}
	}
	return &v
}

// CatalogRepo catálogos de tipos y estados de permiso en memoria.
type CatalogRepo struct{ b backend }

func (r *CatalogRepo) GetTypeByID(_ context.Context, id int64) (*entity.LeaveType, error) {
	var out *entity.LeaveType
	r.b.read(func(st *state) {
		if v, ok := st.leaveTypes[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *CatalogRepo) ListTypes(_ context.Context) ([]*entity.LeaveType, error) {
	var out []*entity.LeaveType
	r.b.read(func(st *state) {
		for _, v := range st.leaveTypes {
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CatalogRepo) GetStatusByID(_ context.Context, id int64) (*entity.LeaveStatus, error) {
	var out *entity.LeaveStatus
	r.b.read(func(st *state) {
		if v, ok := st.leaveStatuses[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *CatalogRepo) GetStatusByCode(_ context.Context, code string) (*entity.LeaveStatus, error) {
	var out *entity.LeaveStatus
	r.b.read(func(st *state) {
		for _, v := range st.leaveStatuses {
			if v.Code == code {
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r *CatalogRepo) ListStatuses(_ context.Context) ([]*entity.LeaveStatus, error) {
	var out []*entity.LeaveStatus
	r.b.read(func(st *state) {
		for _, v := range st.leaveStatuses {
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
