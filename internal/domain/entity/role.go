package entity

// Códigos del catálogo roles_usuario.
const (
	RoleCodeTechnician = "TECNICO"
	RoleCodeSupervisor = "SUPERVISOR"
	RoleCodeAdmin      = "ADMIN"
)

// Role es una entrada del catálogo de roles de usuario.
type Role struct {
	ID   int64
	Code string
	Name string
}
