package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

var (
	_ repository.TeamRepository       = (*TeamRepo)(nil)
	_ repository.MembershipRepository = (*MembershipRepo)(nil)
)

// TeamRepo tabla equipos.
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador.
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

func (r *TeamRepo) Create(ctx context.Context, team *entity.Team) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO equipos (nombre_equipo, delegacion_id) VALUES ($1, $2) RETURNING id`,
		team.Name, team.DelegationID,
	).Scan(&team.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownDelegation
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id int64) (*entity.Team, error) {
	var t entity.Team
	err := r.q.QueryRow(ctx, `SELECT id, nombre_equipo, delegacion_id FROM equipos WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.DelegationID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

func (r *TeamRepo) Update(ctx context.Context, team *entity.Team) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE equipos SET nombre_equipo = $2, delegacion_id = $3 WHERE id = $1`,
		team.ID, team.Name, team.DelegationID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownDelegation
		}
		return fmt.Errorf("update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TeamRepo) List(ctx context.Context, delegationID *int64) ([]*entity.Team, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre_equipo, delegacion_id FROM equipos
		WHERE $1::bigint IS NULL OR delegacion_id = $1
		ORDER BY nombre_equipo, id`, delegationID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.DelegationID); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// MembershipRepo tabla miembros_equipo.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Add inserta el par; el UNIQUE (equipo_id, usuario_id) resuelve altas concurrentes.
func (r *MembershipRepo) Add(ctx context.Context, teamID, userID int64) (*entity.Membership, error) {
	m := entity.Membership{TeamID: teamID, UserID: userID}
	err := r.q.QueryRow(ctx, `
		INSERT INTO miembros_equipo (equipo_id, usuario_id) VALUES ($1, $2)
		RETURNING id, created_at`, teamID, userID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, domain.ErrConflict
		case isForeignKeyViolation(err):
			if constraintName(err) == "miembros_equipo_usuario_id_fkey" {
				return nil, domain.ErrUnknownUser
			}
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert membership: %w", err)
	}
	return &m, nil
}

func (r *MembershipRepo) Remove(ctx context.Context, teamID, userID int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM miembros_equipo WHERE equipo_id = $1 AND usuario_id = $2`, teamID, userID)
	if err != nil {
		return false, fmt.Errorf("delete membership: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MembershipRepo) ListMembers(ctx context.Context, teamID int64) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT u.id, u.nombre, u.apellidos, u.email, u.password_hash, u.rol_id, u.delegacion_id,
			u.activo, u.requiere_reset, u.ultimo_login, u.created_at, u.updated_at
		FROM miembros_equipo m
		JOIN usuarios u ON u.id = m.usuario_id
		WHERE m.equipo_id = $1
		ORDER BY m.id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
