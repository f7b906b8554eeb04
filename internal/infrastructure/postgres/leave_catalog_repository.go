package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

var _ repository.LeaveCatalogRepository = (*LeaveCatalogRepo)(nil)

// LeaveCatalogRepo tablas tipos_permiso y estados_permiso.
type LeaveCatalogRepo struct {
	q Querier
}

// NewLeaveCatalogRepository construye el adaptador.
func NewLeaveCatalogRepository(q Querier) *LeaveCatalogRepo {
	return &LeaveCatalogRepo{q: q}
}

func (r *LeaveCatalogRepo) GetTypeByID(ctx context.Context, id int64) (*entity.LeaveType, error) {
	var t entity.LeaveType
	err := r.q.QueryRow(ctx, `SELECT id, codigo, nombre FROM tipos_permiso WHERE id = $1`, id).
		Scan(&t.ID, &t.Code, &t.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave type: %w", err)
	}
	return &t, nil
}

func (r *LeaveCatalogRepo) ListTypes(ctx context.Context) ([]*entity.LeaveType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, codigo, nombre FROM tipos_permiso ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list leave types: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.LeaveType, error) {
		var t entity.LeaveType
		err := row.Scan(&t.ID, &t.Code, &t.Name)
		return &t, err
	})
}

func (r *LeaveCatalogRepo) GetStatusByID(ctx context.Context, id int64) (*entity.LeaveStatus, error) {
	return r.getStatus(ctx, `SELECT id, codigo, nombre FROM estados_permiso WHERE id = $1`, id)
}

func (r *LeaveCatalogRepo) GetStatusByCode(ctx context.Context, code string) (*entity.LeaveStatus, error) {
	return r.getStatus(ctx, `SELECT id, codigo, nombre FROM estados_permiso WHERE codigo = $1`, code)
}

func (r *LeaveCatalogRepo) getStatus(ctx context.Context, query string, arg any) (*entity.LeaveStatus, error) {
	var s entity.LeaveStatus
	if err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Code, &s.Name); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave status: %w", err)
	}
	return &s, nil
}

func (r *LeaveCatalogRepo) ListStatuses(ctx context.Context) ([]*entity.LeaveStatus, error) {
	rows, err := r.q.Query(ctx, `SELECT id, codigo, nombre FROM estados_permiso ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list leave statuses: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.LeaveStatus, error) {
		var s entity.LeaveStatus
		err := row.Scan(&s.ID, &s.Code, &s.Name)
		return &s, err
	})
}
