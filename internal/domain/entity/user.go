package entity

import "time"

// User representa un técnico, supervisor o administrador.
// DelegationID es su delegación de origen.
type User struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	RoleID        int64
	DelegationID  int64
	Active        bool
	RequiresReset bool
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName devuelve "Nombre Apellidos".
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
