package dto

import (
	"time"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// CreateTeamRequest alta de equipo.
type CreateTeamRequest struct {
	NombreEquipo string `json:"nombre_equipo" validate:"required,min=1,max=120"`
	DelegacionID int64  `json:"delegacion_id" validate:"required,gt=0"`
}

// UpdateTeamRequest edición parcial de equipo.
type UpdateTeamRequest struct {
	NombreEquipo *string `json:"nombre_equipo" validate:"omitempty,min=1,max=120"`
	DelegacionID *int64  `json:"delegacion_id" validate:"omitempty,gt=0"`
}

// AddMemberRequest alta de miembro.
type AddMemberRequest struct {
	UsuarioID int64 `json:"usuario_id" validate:"required,gt=0"`
}

// TeamResponse salida de equipo; Miembros solo en el detalle.
type TeamResponse struct {
	ID           int64       `json:"id"`
	NombreEquipo string      `json:"nombre_equipo"`
	DelegacionID int64       `json:"delegacion_id"`
	Miembros     []UserBrief `json:"miembros,omitempty"`
}

// MembershipResponse salida del alta de miembro.
type MembershipResponse struct {
	ID        int64     `json:"id"`
	EquipoID  int64     `json:"equipo_id"`
	UsuarioID int64     `json:"usuario_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamFromEntity mapea el equipo y sus miembros cargados.
func TeamFromEntity(t *entity.Team) TeamResponse {
	out := TeamResponse{ID: t.ID, NombreEquipo: t.Name, DelegacionID: t.DelegationID}
	if t.Members != nil {
		out.Miembros = UsersBrief(t.Members)
	}
	return out
}

// MembershipFromEntity mapea un alta de miembro.
func MembershipFromEntity(m *entity.Membership) MembershipResponse {
	return MembershipResponse{ID: m.ID, EquipoID: m.TeamID, UsuarioID: m.UserID, CreatedAt: m.CreatedAt}
}
