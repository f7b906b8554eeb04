package memstore

import (
	"time"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// Catalogs ids de los catálogos sembrados por NewSeeded.
type Catalogs struct {
	RoleTechnician int64
	RoleSupervisor int64
	RoleAdmin      int64

	GuardPrincipal  int64
	GuardSecundario int64

	TypeVacaciones int64
	TypeBajaMedica int64

	StatusPending   int64
	StatusApproved  int64
	StatusRejected  int64
	StatusCancelled int64
}

// NewSeeded crea un almacén con los mismos catálogos que cmd/seed.
func NewSeeded() (*Store, Catalogs) {
	s := New()
	c := Catalogs{
		RoleTechnician:  s.AddRole(entity.RoleCodeTechnician, "Técnico"),
		RoleSupervisor:  s.AddRole(entity.RoleCodeSupervisor, "Supervisor"),
		RoleAdmin:       s.AddRole(entity.RoleCodeAdmin, "Administrador"),
		GuardPrincipal:  s.AddGuardRole(entity.GuardRolePrincipal, "Principal"),
		GuardSecundario: s.AddGuardRole(entity.GuardRoleSecundario, "Secundario"),
		TypeVacaciones:  s.AddLeaveType("VACACIONES", "Vacaciones"),
		TypeBajaMedica:  s.AddLeaveType("BAJA_MEDICA", "Baja médica"),
		StatusPending:   s.AddLeaveStatus(entity.LeaveStatusPending, "Pendiente"),
		StatusApproved:  s.AddLeaveStatus(entity.LeaveStatusApproved, "Aprobado"),
		StatusRejected:  s.AddLeaveStatus(entity.LeaveStatusRejected, "Rechazado"),
		StatusCancelled: s.AddLeaveStatus(entity.LeaveStatusCancelled, "Cancelado"),
	}
	return s, c
}

func (s *Store) add(fn func(st *state) int64) int64 {
	var id int64
	_ = s.inTx(func(st *state) error {
		id = fn(st)
		return nil
	})
	return id
}

// AddRole inserta un rol de usuario.
func (s *Store) AddRole(code, name string) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		st.roles[id] = entity.Role{ID: id, Code: code, Name: name}
		return id
	})
}

// AddGuardRole inserta un rol de guardia.
func (s *Store) AddGuardRole(code, name string) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		st.guardRoles[id] = entity.GuardRole{ID: id, Code: code, Name: name}
		return id
	})
}

// AddLeaveType inserta un tipo de permiso.
func (s *Store) AddLeaveType(code, name string) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		st.leaveTypes[id] = entity.LeaveType{ID: id, Code: code, Name: name}
		return id
	})
}

// AddLeaveStatus inserta un estado de permiso.
func (s *Store) AddLeaveStatus(code, name string) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		st.leaveStatuses[id] = entity.LeaveStatus{ID: id, Code: code, Name: name}
		return id
	})
}

// AddDelegation inserta una delegación activa.
func (s *Store) AddDelegation(name string) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		st.delegations[id] = entity.Delegation{ID: id, Name: name, Active: true}
		return id
	})
}

// AddUser inserta un usuario activo con email <name>@empresa.local.
func (s *Store) AddUser(name string, roleID, delegationID int64) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		now := time.Now()
		st.users[id] = entity.User{
			ID:           id,
			FirstName:    name,
			Email:        name + "@empresa.local",
			RoleID:       roleID,
			DelegationID: delegationID,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return id
	})
}

// AddTeam inserta un equipo.
func (s *Store) AddTeam(name string, delegationID int64) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		st.teams[id] = entity.Team{ID: id, Name: name, DelegationID: delegationID}
		return id
	})
}

// AddShift inserta una guardia sin pasar por las validaciones.
func (s *Store) AddShift(delegationID int64, start, end time.Time) int64 {
	return s.add(func(st *state) int64 {
		id := st.nextID()
		st.shifts[id] = entity.Shift{ID: id, DelegationID: delegationID, Start: start, End: end, Status: entity.DefaultShiftStatus}
		return id
	})
}

// CountAssignments devuelve cuántas asignaciones tiene la guardia.
func (s *Store) CountAssignments(shiftID int64) int {
	n := 0
	s.read(func(st *state) {
		for _, a := range st.assignments {
			if a.ShiftID == shiftID {
				n++
			}
		}
	})
	return n
}

// CountShifts devuelve cuántas guardias tiene la delegación.
func (s *Store) CountShifts(delegationID int64) int {
	n := 0
	s.read(func(st *state) {
		for _, sh := range st.shifts {
			if sh.DelegationID == delegationID {
				n++
			}
		}
	})
	return n
}
