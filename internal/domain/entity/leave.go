package entity

import "time"

// Códigos del catálogo estados_permiso. Es un conjunto cerrado.
const (
	LeaveStatusPending   = "PENDIENTE"
	LeaveStatusApproved  = "APROBADO"
	LeaveStatusRejected  = "RECHAZADO"
	LeaveStatusCancelled = "CANCELADO"
)

// MaxLeaveNotesLen coincide con la validación de observaciones.
const MaxLeaveNotesLen = 500

// IsKnownLeaveStatus indica si el código pertenece al conjunto cerrado de estados.
func IsKnownLeaveStatus(code string) bool {
	switch code {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled:
		return true
	}
	return false
}

// LeaveType es una entrada del catálogo tipos_permiso.
type LeaveType struct {
	ID   int64
	Code string
	Name string
}

// LeaveStatus es una entrada del catálogo estados_permiso.
type LeaveStatus struct {
	ID   int64
	Code string
	Name string
}

// IsTerminal: todo estado distinto de PENDIENTE es final.
func (s *LeaveStatus) IsTerminal() bool {
	return s.Code != LeaveStatusPending
}

// LeaveRequest (permiso) pertenece a un usuario. Start y End son fechas y End >= Start.
type LeaveRequest struct {
	ID        int64
	UserID    int64
	TypeID    int64
	StatusID  int64
	Start     time.Time
	End       time.Time
	Notes     *string
	CreatedBy int64
	DecidedBy *int64
	CreatedAt time.Time
	UpdatedAt time.Time

	Type   *LeaveType
	Status *LeaveStatus
	User   *User
}
