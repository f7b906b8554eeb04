package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

var (
	_ repository.RoleRepository       = (*RoleRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.DelegationRepository = (*DelegationRepo)(nil)
)

// RoleRepo catálogo de roles en memoria.
type RoleRepo struct{ b backend }

func (r *RoleRepo) GetByID(_ context.Context, id int64) (*entity.Role, error) {
	var out *entity.Role
	r.b.read(func(st *state) {
		if v, ok := st.roles[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *RoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	var out []*entity.Role
	r.b.read(func(st *state) {
		for _, v := range st.roles {
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.roles[role.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, v := range st.roles {
			if id != role.ID && v.Code == role.Code {
				return domain.ErrConflict
			}
		}
		st.roles[role.ID] = *role
		return nil
	})
}

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct{ b backend }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.b.write(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		user.ID = st.nextID()
		st.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.b.read(func(st *state) {
		if v, ok := st.users[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.b.read(func(st *state) {
		for _, v := range st.users {
			if strings.EqualFold(v.Email, email) {
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*entity.User, error) {
	out := make(map[int64]*entity.User, len(ids))
	r.b.read(func(st *state) {
		for _, id := range ids {
			if v, ok := st.users[id]; ok {
				out[id] = &v
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.users[user.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, u := range st.users {
			if id != user.ID && strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) TouchLastLogin(_ context.Context, id int64) error {
	return r.b.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		now := time.Now()
		u.LastLogin = &now
		st.users[id] = u
		return nil
	})
}

// DelegationRepo delegaciones en memoria. El nombre es único.
type DelegationRepo struct{ b backend }

func (r *DelegationRepo) Create(_ context.Context, d *entity.Delegation) error {
	return r.b.write(func(st *state) error {
		for _, v := range st.delegations {
			if v.Name == d.Name {
				return domain.ErrConflict
			}
		}
		d.ID = st.nextID()
		st.delegations[d.ID] = *d
		return nil
	})
}

func (r *DelegationRepo) GetByID(_ context.Context, id int64) (*entity.Delegation, error) {
	var out *entity.Delegation
	r.b.read(func(st *state) {
		if v, ok := st.delegations[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *DelegationRepo) List(_ context.Context) ([]*entity.Delegation, error) {
	var out []*entity.Delegation
	r.b.read(func(st *state) {
		for _, v := range st.delegations {
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DelegationRepo) Update(_ context.Context, d *entity.Delegation) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.delegations[d.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, v := range st.delegations {
			if id != d.ID && v.Name == d.Name {
				return domain.ErrConflict
			}
		}
		st.delegations[d.ID] = *d
		return nil
	})
}
