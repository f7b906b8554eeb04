// Package policy define los niveles de capacidad derivados del rol de usuario.
package policy

import "github.com/jhoicas/guardias-api/internal/domain/entity"

// Capability es el nivel de autorización de un rol. El orden numérico es significativo:
// Technician < Supervisor < Admin.
type Capability int

const (
	Technician Capability = iota + 1
	Supervisor
	Admin
)

// String devuelve el código de catálogo asociado.
func (c Capability) String() string {
	switch c {
	case Supervisor:
		return entity.RoleCodeSupervisor
	case Admin:
		return entity.RoleCodeAdmin
	default:
		return entity.RoleCodeTechnician
	}
}

// FromRoleCode traduce el código del catálogo roles_usuario a una capacidad.
// Un código desconocido no concede privilegios: se trata como técnico.
func FromRoleCode(code string) Capability {
	switch code {
	case entity.RoleCodeAdmin:
		return Admin
	case entity.RoleCodeSupervisor:
		return Supervisor
	default:
		return Technician
	}
}

// AtLeast indica si c alcanza el nivel min.
func (c Capability) AtLeast(min Capability) bool {
	return c >= min
}
