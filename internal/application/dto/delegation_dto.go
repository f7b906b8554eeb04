package dto

import "github.com/jhoicas/guardias-api/internal/domain/entity"

// CreateDelegationRequest alta de delegación.
type CreateDelegationRequest struct {
	Nombre     string  `json:"nombre" validate:"required,min=1,max=120"`
	Codigo     *string `json:"codigo" validate:"omitempty,max=20"`
	PaisCode   *string `json:"pais_code" validate:"omitempty,len=2"`
	RegionCode *string `json:"region_code" validate:"omitempty,max=50"`
	Activo     *bool   `json:"activo"`
}

// UpdateDelegationRequest edición parcial de delegación.
type UpdateDelegationRequest struct {
	Nombre     *string `json:"nombre" validate:"omitempty,min=1,max=120"`
	Codigo     *string `json:"codigo" validate:"omitempty,max=20"`
	PaisCode   *string `json:"pais_code" validate:"omitempty,len=2"`
	RegionCode *string `json:"region_code" validate:"omitempty,max=50"`
	Activo     *bool   `json:"activo"`
}

// DelegationResponse salida de delegación.
type DelegationResponse struct {
	ID         int64   `json:"id"`
	Nombre     string  `json:"nombre"`
	Codigo     *string `json:"codigo"`
	PaisCode   *string `json:"pais_code"`
	RegionCode *string `json:"region_code"`
	Activo     bool    `json:"activo"`
}

// DelegationFromEntity mapea la entidad a la respuesta.
func DelegationFromEntity(d *entity.Delegation) DelegationResponse {
	return DelegationResponse{
		ID:         d.ID,
		Nombre:     d.Name,
		Codigo:     d.Code,
		PaisCode:   d.CountryCode,
		RegionCode: d.RegionCode,
		Activo:     d.Active,
	}
}
