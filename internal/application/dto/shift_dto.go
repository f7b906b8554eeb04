package dto

import (
	"time"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// AssignmentRequest una línea de asignación de guardia.
type AssignmentRequest struct {
	UsuarioID    int64 `json:"usuario_id" validate:"required,gt=0"`
	RolGuardiaID int64 `json:"rol_guardia_id" validate:"required,gt=0"`
}

// CreateShiftRequest alta de guardia. Las fechas admiten RFC 3339 o AAAA-MM-DD.
type CreateShiftRequest struct {
	DelegacionID *int64              `json:"delegacion_id" validate:"omitempty,gt=0"`
	FechaInicio  string              `json:"fecha_inicio" validate:"required"`
	FechaFin     string              `json:"fecha_fin" validate:"required"`
	Estado       *string             `json:"estado" validate:"omitempty,max=20"`
	Asignaciones []AssignmentRequest `json:"asignaciones" validate:"omitempty,dive"`
}

// UpdateShiftRequest reprogramación parcial. "asignaciones": [] vacía el conjunto;
// omitir el campo lo conserva.
type UpdateShiftRequest struct {
	FechaInicio  *string              `json:"fecha_inicio"`
	FechaFin     *string              `json:"fecha_fin"`
	Estado       *string              `json:"estado" validate:"omitempty,max=20"`
	Asignaciones *[]AssignmentRequest `json:"asignaciones" validate:"omitempty,dive"`
}

// AssignmentResponse asignación dentro de una guardia.
type AssignmentResponse struct {
	ID           int64        `json:"id"`
	UsuarioID    int64        `json:"usuario_id"`
	RolGuardiaID int64        `json:"rol_guardia_id"`
	Usuario      *UserBrief   `json:"usuario,omitempty"`
	RolGuardia   *CatalogItem `json:"rol_guardia,omitempty"`
}

// ShiftResponse salida de guardia.
type ShiftResponse struct {
	ID           int64                `json:"id"`
	DelegacionID int64                `json:"delegacion_id"`
	FechaInicio  time.Time            `json:"fecha_inicio"`
	FechaFin     time.Time            `json:"fecha_fin"`
	Estado       string               `json:"estado"`
	Asignaciones []AssignmentResponse `json:"asignaciones,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// MyShiftResponse guardia vista por el técnico asignado.
type MyShiftResponse struct {
	AsignacionID int64         `json:"asignacion_id"`
	Guardia      ShiftResponse `json:"guardia"`
	RolGuardia   CatalogItem   `json:"rol_guardia"`
}

// ShiftFromEntity mapea la guardia con sus asignaciones, si están cargadas.
func ShiftFromEntity(s *entity.Shift) ShiftResponse {
	out := ShiftResponse{
		ID:           s.ID,
		DelegacionID: s.DelegationID,
		FechaInicio:  s.Start,
		FechaFin:     s.End,
		Estado:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	for _, a := range s.Assignments {
		ar := AssignmentResponse{
			ID:           a.ID,
			UsuarioID:    a.UserID,
			RolGuardiaID: a.GuardRoleID,
			Usuario:      UserBriefFromEntity(a.User),
		}
		if a.GuardRole != nil {
			gr := GuardRoleFromEntity(a.GuardRole)
			ar.RolGuardia = &gr
		}
		out.Asignaciones = append(out.Asignaciones, ar)
	}
	return out
}

// ShiftsFromEntities mapea una lista de guardias.
func ShiftsFromEntities(list []*entity.Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ShiftFromEntity(s))
	}
	return out
}

// MyShiftFromEntity mapea una guardia del usuario.
func MyShiftFromEntity(us *entity.UserShift) MyShiftResponse {
	return MyShiftResponse{
		AsignacionID: us.AssignmentID,
		Guardia:      ShiftFromEntity(&us.Shift),
		RolGuardia:   GuardRoleFromEntity(&us.GuardRole),
	}
}

// GuardRoleFromEntity mapea un rol de guardia.
func GuardRoleFromEntity(g *entity.GuardRole) CatalogItem {
	return CatalogItem{ID: g.ID, Codigo: g.Code, Nombre: g.Name}
}
