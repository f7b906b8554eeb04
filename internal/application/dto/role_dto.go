package dto

import "github.com/jhoicas/guardias-api/internal/domain/entity"

// UpdateRoleRequest edición parcial de un rol de usuario.
type UpdateRoleRequest struct {
	Codigo *string `json:"codigo" validate:"omitempty,min=1,max=30"`
	Nombre *string `json:"nombre" validate:"omitempty,min=1,max=80"`
}

// RoleFromEntity mapea un rol de usuario.
func RoleFromEntity(r *entity.Role) CatalogItem {
	return CatalogItem{ID: r.ID, Codigo: r.Code, Nombre: r.Name}
}
