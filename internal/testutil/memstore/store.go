// Package memstore implementa en memoria todos los repositorios y runners transaccionales
// para los tests de casos de uso. Las transacciones trabajan sobre una copia del estado
// que solo se publica si fn termina sin error, y se ejecutan de una en una.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

type state struct {
	seq           int64
	roles         map[int64]entity.Role
	users         map[int64]entity.User
	delegations   map[int64]entity.Delegation
	teams         map[int64]entity.Team
	memberships   []entity.Membership
	shifts        map[int64]entity.Shift
	guardRoles    map[int64]entity.GuardRole
	assignments   []entity.ShiftAssignment
	leaveTypes    map[int64]entity.LeaveType
	leaveStatuses map[int64]entity.LeaveStatus
	leaves        map[int64]entity.LeaveRequest
}

func newState() *state {
	return &state{
		roles:         map[int64]entity.Role{},
		users:         map[int64]entity.User{},
		delegations:   map[int64]entity.Delegation{},
		teams:         map[int64]entity.Team{},
		shifts:        map[int64]entity.Shift{},
		guardRoles:    map[int64]entity.GuardRole{},
		leaveTypes:    map[int64]entity.LeaveType{},
		leaveStatuses: map[int64]entity.LeaveStatus{},
		leaves:        map[int64]entity.LeaveRequest{},
	}
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		seq:           s.seq,
		roles:         cloneMap(s.roles),
		users:         cloneMap(s.users),
		delegations:   cloneMap(s.delegations),
		teams:         cloneMap(s.teams),
		memberships:   append([]entity.Membership(nil), s.memberships...),
		shifts:        cloneMap(s.shifts),
		guardRoles:    cloneMap(s.guardRoles),
		assignments:   append([]entity.ShiftAssignment(nil), s.assignments...),
		leaveTypes:    cloneMap(s.leaveTypes),
		leaveStatuses: cloneMap(s.leaveStatuses),
		leaves:        cloneMap(s.leaves),
	}
}

// backend abstrae el acceso al estado: directo (store) o sobre la copia de una transacción.
type backend interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store es el almacén compartido. El valor cero no es utilizable: usar New.
type Store struct {
	txMu sync.Mutex   // serializa escrituras y transacciones
	mu   sync.RWMutex // protege data
	data *state

	Roles       *RoleRepo
	Users       *UserRepo
	Delegations *DelegationRepo
	Teams       *TeamRepo
	Memberships *MembershipRepo
	Shifts      *ShiftRepo
	Assignments *AssignmentRepo
	GuardRoles  *GuardRoleRepo
	Leaves      *LeaveRepo
	Catalog     *CatalogRepo
}

// New crea un almacén vacío.
func New() *Store {
	s := &Store{data: newState()}
	s.Roles = &RoleRepo{b: s}
	s.Users = &UserRepo{b: s}
	s.Delegations = &DelegationRepo{b: s}
	s.Teams = &TeamRepo{b: s}
	s.Memberships = &MembershipRepo{b: s}
	s.Shifts = &ShiftRepo{b: s}
	s.Assignments = &AssignmentRepo{b: s}
	s.GuardRoles = &GuardRoleRepo{b: s}
	s.Leaves = &LeaveRepo{b: s}
	s.Catalog = &CatalogRepo{b: s}
	return s
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(st *state) error) error {
	return s.inTx(fn)
}

// inTx ejecuta fn sobre una copia y la publica solo si no hay error.
func (s *Store) inTx(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

type txBackend struct {
	st *state
}

func (t txBackend) read(fn func(st *state))              { fn(t.st) }
func (t txBackend) write(fn func(st *state) error) error { return fn(t.st) }

// RunInDelegation serializa todas las transacciones, lo que incluye la sección crítica por delegación.
func (s *Store) RunInDelegation(_ context.Context, _ int64, fn func(
	shiftRepo repository.ShiftRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	guardRoleRepo repository.GuardRoleRepository,
) error) error {
	return s.inTx(func(st *state) error {
		b := txBackend{st: st}
		return fn(&ShiftRepo{b: b}, &AssignmentRepo{b: b}, &UserRepo{b: b}, &GuardRoleRepo{b: b})
	})
}

// RunLeave ejecuta fn con los repositorios de permisos atados a la transacción.
func (s *Store) RunLeave(_ context.Context, fn func(
	leaveRepo repository.LeaveRequestRepository,
	catalogRepo repository.LeaveCatalogRepository,
) error) error {
	return s.inTx(func(st *state) error {
		b := txBackend{st: st}
		return fn(&LeaveRepo{b: b}, &CatalogRepo{b: b})
	})
}
