package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

var _ repository.LeaveRequestRepository = (*LeaveRepo)(nil)

// LeaveRepo tabla permisos.
type LeaveRepo struct {
	q Querier
}

// NewLeaveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeaveRepository(q Querier) *LeaveRepo {
	return &LeaveRepo{q: q}
}

const leaveSelect = `
	SELECT p.id, p.usuario_id, p.tipo_id, p.estado_id, p.fecha_inicio, p.fecha_fin, p.observaciones,
		p.creado_por, p.decidido_por, p.created_at, p.updated_at,
		t.codigo, t.nombre, e.codigo, e.nombre
	FROM permisos p
	JOIN tipos_permiso t ON t.id = p.tipo_id
	JOIN estados_permiso e ON e.id = p.estado_id`

func scanLeave(row pgx.Row) (*entity.LeaveRequest, error) {
	var (
		l  entity.LeaveRequest
		lt entity.LeaveType
		ls entity.LeaveStatus
	)
	err := row.Scan(&l.ID, &l.UserID, &l.TypeID, &l.StatusID, &l.Start, &l.End, &l.Notes,
		&l.CreatedBy, &l.DecidedBy, &l.CreatedAt, &l.UpdatedAt,
		&lt.Code, &lt.Name, &ls.Code, &ls.Name)
	if err != nil {
		return nil, err
	}
	lt.ID, ls.ID = l.TypeID, l.StatusID
	l.Type, l.Status = &lt, &ls
	return &l, nil
}

func (r *LeaveRepo) Create(ctx context.Context, l *entity.LeaveRequest) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO permisos (usuario_id, tipo_id, estado_id, fecha_inicio, fecha_fin, observaciones, creado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		l.UserID, l.TypeID, l.StatusID, l.Start, l.End, l.Notes, l.CreatedBy,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		switch {
		case isCheckViolation(err):
			return domain.ErrInvalidRange
		case isForeignKeyViolation(err):
			if constraintName(err) == "permisos_tipo_id_fkey" {
				return domain.ErrUnknownLeaveType
			}
			return domain.ErrUnknownUser
		}
		return fmt.Errorf("insert leave: %w", err)
	}
	return nil
}

func (r *LeaveRepo) GetByID(ctx context.Context, id int64) (*entity.LeaveRequest, error) {
	return r.get(ctx, leaveSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate bloquea solo la fila del permiso, no los catálogos.
func (r *LeaveRepo) GetForUpdate(ctx context.Context, id int64) (*entity.LeaveRequest, error) {
	return r.get(ctx, leaveSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *LeaveRepo) get(ctx context.Context, query string, id int64) (*entity.LeaveRequest, error) {
	l, err := scanLeave(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave: %w", err)
	}
	return l, nil
}

// Decide es un compare-and-set sobre estado_id.
func (r *LeaveRepo) Decide(ctx context.Context, l *entity.LeaveRequest, expectedStatusID int64) (bool, error) {
	err := r.q.QueryRow(ctx, `
		UPDATE permisos SET estado_id = $2, observaciones = $3, decidido_por = $4, updated_at = now()
		WHERE id = $1 AND estado_id = $5
		RETURNING updated_at`,
		l.ID, l.StatusID, l.Notes, l.DecidedBy, expectedStatusID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("decide leave: %w", err)
	}
	return true, nil
}

func (r *LeaveRepo) ListByUser(ctx context.Context, userID int64, f repository.LeaveFilter) ([]*entity.LeaveRequest, error) {
	where := []string{"p.usuario_id = $1"}
	args := []any{userID}
	if f.Year != nil {
		from, to := schedule.YearRange(*f.Year)
		args = append(args, from, to)
		where = append(where, fmt.Sprintf("p.fecha_inicio >= $%d AND p.fecha_inicio < $%d", len(args)-1, len(args)))
	}
	if f.TypeID != nil {
		args = append(args, *f.TypeID)
		where = append(where, fmt.Sprintf("p.tipo_id = $%d", len(args)))
	}
	if f.StatusID != nil {
		args = append(args, *f.StatusID)
		where = append(where, fmt.Sprintf("p.estado_id = $%d", len(args)))
	}
	query := leaveSelect + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY p.fecha_inicio DESC, p.id DESC`
	return r.list(ctx, query, args...)
}

// ListByTeam incluye el usuario de cada permiso.
func (r *LeaveRepo) ListByTeam(ctx context.Context, teamID int64, year *int) ([]*entity.LeaveRequest, error) {
	var from, to *time.Time
	if year != nil {
		f, t := schedule.YearRange(*year)
		from, to = &f, &t
	}
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.usuario_id, p.tipo_id, p.estado_id, p.fecha_inicio, p.fecha_fin, p.observaciones,
			p.creado_por, p.decidido_por, p.created_at, p.updated_at,
			t.codigo, t.nombre, e.codigo, e.nombre,
			u.nombre, u.apellidos, u.email, u.rol_id, u.delegacion_id, u.activo
		FROM permisos p
		JOIN tipos_permiso t ON t.id = p.tipo_id
		JOIN estados_permiso e ON e.id = p.estado_id
		JOIN usuarios u ON u.id = p.usuario_id
		JOIN miembros_equipo m ON m.usuario_id = p.usuario_id AND m.equipo_id = $1
		WHERE ($2::date IS NULL OR (p.fecha_inicio >= $2 AND p.fecha_inicio < $3))
		ORDER BY p.fecha_inicio DESC, p.id DESC`, teamID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list team leaves: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.LeaveRequest, error) {
		var (
			l  entity.LeaveRequest
			lt entity.LeaveType
			ls entity.LeaveStatus
			u  entity.User
		)
		err := row.Scan(&l.ID, &l.UserID, &l.TypeID, &l.StatusID, &l.Start, &l.End, &l.Notes,
			&l.CreatedBy, &l.DecidedBy, &l.CreatedAt, &l.UpdatedAt,
			&lt.Code, &lt.Name, &ls.Code, &ls.Name,
			&u.FirstName, &u.LastName, &u.Email, &u.RoleID, &u.DelegationID, &u.Active)
		if err != nil {
			return nil, err
		}
		lt.ID, ls.ID, u.ID = l.TypeID, l.StatusID, l.UserID
		l.Type, l.Status, l.User = &lt, &ls, &u
		return &l, nil
	})
}

func (r *LeaveRepo) list(ctx context.Context, query string, args ...any) ([]*entity.LeaveRequest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()
	var list []*entity.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
