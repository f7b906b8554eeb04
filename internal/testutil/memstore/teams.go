package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

var (
	_ repository.TeamRepository       = (*TeamRepo)(nil)
	_ repository.MembershipRepository = (*MembershipRepo)(nil)
)

// TeamRepo equipos en memoria.
type TeamRepo struct{ b backend }

func (r *TeamRepo) Create(_ context.Context, team *entity.Team) error {
	return r.b.write(func(st *state) error {
		team.ID = st.nextID()
		stored := *team
		stored.Members = nil
		st.teams[team.ID] = stored
		return nil
	})
}

func (r *TeamRepo) GetByID(_ context.Context, id int64) (*entity.Team, error) {
	var out *entity.Team
	r.b.read(func(st *state) {
		if v, ok := st.teams[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *TeamRepo) Update(_ context.Context, team *entity.Team) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.teams[team.ID]; !ok {
			return domain.ErrNotFound
		}
		stored := *team
		stored.Members = nil
		st.teams[team.ID] = stored
		return nil
	})
}

func (r *TeamRepo) List(_ context.Context, delegationID *int64) ([]*entity.Team, error) {
	var out []*entity.Team
	r.b.read(func(st *state) {
		for _, v := range st.teams {
			if delegationID != nil && v.DelegationID != *delegationID {
				continue
			}
			out = append(out, &v)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MembershipRepo miembros de equipo en memoria, en orden de alta.
type MembershipRepo struct{ b backend }

func (r *MembershipRepo) Add(_ context.Context, teamID, userID int64) (*entity.Membership, error) {
	var out *entity.Membership
	err := r.b.write(func(st *state) error {
		for _, m := range st.memberships {
			if m.TeamID == teamID && m.UserID == userID {
				return domain.ErrConflict
			}
		}
		m := entity.Membership{ID: st.nextID(), TeamID: teamID, UserID: userID, CreatedAt: time.Now()}
		st.memberships = append(st.memberships, m)
		out = &m
		return nil
	})
	return out, err
}

func (r *MembershipRepo) Remove(_ context.Context, teamID, userID int64) (bool, error) {
	removed := false
	err := r.b.write(func(st *state) error {
		kept := st.memberships[:0:0]
		for _, m := range st.memberships {
			if m.TeamID == teamID && m.UserID == userID {
				removed = true
				continue
			}
			kept = append(kept, m)
		}
		st.memberships = kept
		return nil
	})
	return removed, err
}

func (r *MembershipRepo) ListMembers(_ context.Context, teamID int64) ([]*entity.User, error) {
	var out []*entity.User
	r.b.read(func(st *state) {
		for _, m := range st.memberships {
			if m.TeamID != teamID {
				continue
			}
			if u, ok := st.users[m.UserID]; ok {
				out = append(out, &u)
			}
		}
	})
	return out, nil
}

func memberIDs(st *state, teamID int64) map[int64]struct{} {
	ids := map[int64]struct{}{}
	for _, m := range st.memberships {
		if m.TeamID == teamID {
			ids[m.UserID] = struct{}{}
		}
	}
	return ids
}
