package entity

import "time"

// DefaultShiftStatus se aplica cuando la guardia se crea sin estado.
const DefaultShiftStatus = "PLANIFICADA"

// MaxShiftStatusLen coincide con la columna guardias.estado.
const MaxShiftStatusLen = 20

// Shift (guardia) es un intervalo semiabierto [Start, End) de servicio de guardia
// de una delegación. Status es una etiqueta libre, no un catálogo cerrado.
type Shift struct {
	ID           int64
	DelegationID int64
	Start        time.Time
	End          time.Time
	Status       string
	Assignments  []*ShiftAssignment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GuardRole distingue el puesto dentro de una guardia (principal, secundario...).
type GuardRole struct {
	ID   int64
	Code string
	Name string
}

// Códigos sembrados en roles_guardia.
const (
	GuardRolePrincipal  = "PRINCIPAL"
	GuardRoleSecundario = "SECUNDARIO"
)

// ShiftAssignment asigna un usuario a una guardia con un rol de guardia.
type ShiftAssignment struct {
	ID          int64
	ShiftID     int64
	UserID      int64
	GuardRoleID int64
	User        *User
	GuardRole   *GuardRole
}

// UserShift es una guardia vista desde el usuario asignado.
type UserShift struct {
	AssignmentID int64
	Shift        Shift
	GuardRole    GuardRole
}
