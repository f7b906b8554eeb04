package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Es un conjunto cerrado: la capa HTTP traduce cada uno a un código de estado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Política de roles
	ErrRoleNotFound = errors.New("rol de usuario no encontrado")

	// Guardias
	ErrInvalidRange              = errors.New("rango de fechas inválido")
	ErrOverlapConflict           = errors.New("ya existe una guardia solapada en esta delegación")
	ErrDuplicateAssignment       = errors.New("asignación duplicada en la guardia")
	ErrUnknownUser               = errors.New("usuario no encontrado")
	ErrUnknownGuardRole          = errors.New("rol de guardia no encontrado")
	ErrCrossDelegationAssignment = errors.New("el usuario asignado pertenece a otra delegación")

	// Permisos
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrUnknownStatus     = errors.New("estado de permiso no válido")
	ErrUnknownLeaveType  = errors.New("tipo de permiso no válido")

	// Equipos y delegaciones
	ErrCrossDelegationViolation = errors.New("usuario y equipo deben pertenecer a la misma delegación")
	ErrUnknownDelegation        = errors.New("delegación no encontrada")
)
