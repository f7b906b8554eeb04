package repository

import (
	"context"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// LeaveFilter filtros opcionales para listar permisos.
type LeaveFilter struct {
	Year     *int
	TypeID   *int64
	StatusID *int64
}

// LeaveRequestRepository define el puerto de persistencia para permisos.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req *entity.LeaveRequest) error
	// GetByID incluye tipo y estado.
	GetByID(ctx context.Context, id int64) (*entity.LeaveRequest, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.LeaveRequest, error)
	// Decide cambia el estado solo si sigue siendo expectedStatusID; devuelve false si no.
	Decide(ctx context.Context, req *entity.LeaveRequest, expectedStatusID int64) (bool, error)
	// ListByUser ordena por fecha de inicio descendente.
	ListByUser(ctx context.Context, userID int64, f LeaveFilter) ([]*entity.LeaveRequest, error)
	// ListByTeam lista los permisos de los miembros del equipo, con usuario.
	ListByTeam(ctx context.Context, teamID int64, year *int) ([]*entity.LeaveRequest, error)
}

// LeaveCatalogRepository define el puerto de los catálogos de tipos y estados de permiso.
type LeaveCatalogRepository interface {
	GetTypeByID(ctx context.Context, id int64) (*entity.LeaveType, error)
	ListTypes(ctx context.Context) ([]*entity.LeaveType, error)
	GetStatusByID(ctx context.Context, id int64) (*entity.LeaveStatus, error)
	GetStatusByCode(ctx context.Context, code string) (*entity.LeaveStatus, error)
	ListStatuses(ctx context.Context) ([]*entity.LeaveStatus, error)
}
