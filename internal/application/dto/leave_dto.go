package dto

import (
	"time"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// CreateLeaveRequest solicitud de permiso propio. Fechas AAAA-MM-DD o RFC 3339.
type CreateLeaveRequest struct {
	TipoID        int64   `json:"tipo_id" validate:"required,gt=0"`
	FechaInicio   string  `json:"fecha_inicio" validate:"required"`
	FechaFin      string  `json:"fecha_fin" validate:"required"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=500"`
}

// DecideLeaveRequest decisión de un supervisor o administrador.
type DecideLeaveRequest struct {
	EstadoID      int64   `json:"estado_id" validate:"required,gt=0"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=500"`
}

// LeaveResponse salida de permiso.
type LeaveResponse struct {
	ID            int64        `json:"id"`
	UsuarioID     int64        `json:"usuario_id"`
	TipoID        int64        `json:"tipo_id"`
	EstadoID      int64        `json:"estado_id"`
	FechaInicio   string       `json:"fecha_inicio"`
	FechaFin      string       `json:"fecha_fin"`
	Observaciones *string      `json:"observaciones"`
	CreadoPor     int64        `json:"creado_por"`
	DecididoPor   *int64       `json:"decidido_por"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Tipo          *CatalogItem `json:"tipo,omitempty"`
	Estado        *CatalogItem `json:"estado,omitempty"`
	Usuario       *UserBrief   `json:"usuario,omitempty"`
}

// DateLayout formato de las fechas de permisos.
const DateLayout = "2006-01-02"

// LeaveFromEntity mapea el permiso y sus relaciones cargadas.
func LeaveFromEntity(l *entity.LeaveRequest) LeaveResponse {
	out := LeaveResponse{
		ID:            l.ID,
		UsuarioID:     l.UserID,
		TipoID:        l.TypeID,
		EstadoID:      l.StatusID,
		FechaInicio:   l.Start.Format(DateLayout),
		FechaFin:      l.End.Format(DateLayout),
		Observaciones: l.Notes,
		CreadoPor:     l.CreatedBy,
		DecididoPor:   l.DecidedBy,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		Usuario:       UserBriefFromEntity(l.User),
	}
	if l.Type != nil {
		out.Tipo = &CatalogItem{ID: l.Type.ID, Codigo: l.Type.Code, Nombre: l.Type.Name}
	}
	if l.Status != nil {
		out.Estado = &CatalogItem{ID: l.Status.ID, Codigo: l.Status.Code, Nombre: l.Status.Name}
	}
	return out
}

// LeavesFromEntities mapea una lista de permisos.
func LeavesFromEntities(list []*entity.LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(list))
	for _, l := range list {
		out = append(out, LeaveFromEntity(l))
	}
	return out
}
