package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

var (
	_ repository.AssignmentRepository = (*AssignmentRepo)(nil)
	_ repository.GuardRoleRepository  = (*GuardRoleRepo)(nil)
)

// AssignmentRepo tabla asignaciones_guardia.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// ReplaceForShift borra y reinserta en un solo batch.
func (r *AssignmentRepo) ReplaceForShift(ctx context.Context, shiftID int64, items []entity.ShiftAssignment) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM asignaciones_guardia WHERE guardia_id = $1`, shiftID); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	for _, a := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO asignaciones_guardia (guardia_id, usuario_id, rol_guardia_id)
			VALUES ($1, $2, $3)`, shiftID, a.UserID, a.GuardRoleID)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return domain.ErrDuplicateAssignment
			case isForeignKeyViolation(err):
				switch constraintName(err) {
				case "asignaciones_guardia_usuario_id_fkey":
					return domain.ErrUnknownUser
				case "asignaciones_guardia_rol_guardia_id_fkey":
					return domain.ErrUnknownGuardRole
				}
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert assignment: %w", err)
		}
	}
	return nil
}

func (r *AssignmentRepo) ListByShift(ctx context.Context, shiftID int64) ([]*entity.ShiftAssignment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.guardia_id, a.usuario_id, a.rol_guardia_id,
			u.nombre, u.apellidos, u.email, u.rol_id, u.delegacion_id, u.activo,
			rg.codigo, rg.nombre
		FROM asignaciones_guardia a
		JOIN usuarios u ON u.id = a.usuario_id
		JOIN roles_guardia rg ON rg.id = a.rol_guardia_id
		WHERE a.guardia_id = $1
		ORDER BY a.id`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShiftAssignment
	for rows.Next() {
		var (
			a  entity.ShiftAssignment
			u  entity.User
			gr entity.GuardRole
		)
		if err := rows.Scan(&a.ID, &a.ShiftID, &a.UserID, &a.GuardRoleID,
			&u.FirstName, &u.LastName, &u.Email, &u.RoleID, &u.DelegationID, &u.Active,
			&gr.Code, &gr.Name); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		u.ID, gr.ID = a.UserID, a.GuardRoleID
		a.User, a.GuardRole = &u, &gr
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AssignmentRepo) ListByUser(ctx context.Context, userID int64, dr schedule.DateRange) ([]*entity.UserShift, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, g.id, g.delegacion_id, g.fecha_inicio, g.fecha_fin, g.estado, g.created_at, g.updated_at,
			rg.id, rg.codigo, rg.nombre
		FROM asignaciones_guardia a
		JOIN guardias g ON g.id = a.guardia_id
		JOIN roles_guardia rg ON rg.id = a.rol_guardia_id
		WHERE a.usuario_id = $1
		  AND ($2::timestamptz IS NULL OR g.fecha_inicio >= $2)
		  AND ($3::timestamptz IS NULL OR g.fecha_inicio <= $3)
		ORDER BY g.fecha_inicio, g.id`, userID, dr.From, dr.To)
	if err != nil {
		return nil, fmt.Errorf("list user shifts: %w", err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.UserShift, error) {
		var us entity.UserShift
		err := row.Scan(&us.AssignmentID, &us.Shift.ID, &us.Shift.DelegationID, &us.Shift.Start, &us.Shift.End,
			&us.Shift.Status, &us.Shift.CreatedAt, &us.Shift.UpdatedAt,
			&us.GuardRole.ID, &us.GuardRole.Code, &us.GuardRole.Name)
		return &us, err
	})
}

// GuardRoleRepo catálogo roles_guardia.
type GuardRoleRepo struct {
	q Querier
}

// NewGuardRoleRepository construye el adaptador.
func NewGuardRoleRepository(q Querier) *GuardRoleRepo {
	return &GuardRoleRepo{q: q}
}

func (r *GuardRoleRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entity.GuardRole, error) {
	out := make(map[int64]*entity.GuardRole, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id, codigo, nombre FROM roles_guardia WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get guard roles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var gr entity.GuardRole
		if err := rows.Scan(&gr.ID, &gr.Code, &gr.Name); err != nil {
			return nil, fmt.Errorf("scan guard role: %w", err)
		}
		out[gr.ID] = &gr
	}
	return out, rows.Err()
}

func (r *GuardRoleRepo) List(ctx context.Context) ([]*entity.GuardRole, error) {
	rows, err := r.q.Query(ctx, `SELECT id, codigo, nombre FROM roles_guardia ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list guard roles: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.GuardRole, error) {
		var gr entity.GuardRole
		err := row.Scan(&gr.ID, &gr.Code, &gr.Name)
		return &gr, err
	})
}
