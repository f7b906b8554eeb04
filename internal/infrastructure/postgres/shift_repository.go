package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo tabla guardias. Las escrituras llegan desde TxRunner.RunInDelegation.
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador.
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

const shiftColumns = `id, delegacion_id, fecha_inicio, fecha_fin, estado, created_at, updated_at`

func (r *ShiftRepo) Create(ctx context.Context, s *entity.Shift) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO guardias (delegacion_id, fecha_inicio, fecha_fin, estado)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		s.DelegationID, s.Start, s.End, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapShiftWriteErr("insert shift", err)
	}
	return nil
}

func (r *ShiftRepo) GetByID(ctx context.Context, id int64) (*entity.Shift, error) {
	var s entity.Shift
	err := r.q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM guardias WHERE id = $1`, id).
		Scan(&s.ID, &s.DelegationID, &s.Start, &s.End, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return &s, nil
}

func (r *ShiftRepo) Update(ctx context.Context, s *entity.Shift) error {
	err := r.q.QueryRow(ctx, `
		UPDATE guardias SET fecha_inicio = $2, fecha_fin = $3, estado = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		s.ID, s.Start, s.End, s.Status,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return mapShiftWriteErr("update shift", err)
	}
	return nil
}

// Delete borra la guardia; las asignaciones caen por ON DELETE CASCADE.
func (r *ShiftRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM guardias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShiftRepo) ExistsOverlap(ctx context.Context, delegationID int64, start, end time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM guardias
			WHERE delegacion_id = $1
			  AND fecha_inicio < $3
			  AND $2 < fecha_fin
			  AND id <> $4
		)`, delegationID, start, end, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return exists, nil
}

func (r *ShiftRepo) ListByDelegation(ctx context.Context, delegationID int64, dr schedule.DateRange) ([]*entity.Shift, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+shiftColumns+` FROM guardias
		WHERE delegacion_id = $1
		  AND ($2::timestamptz IS NULL OR fecha_inicio >= $2)
		  AND ($3::timestamptz IS NULL OR fecha_inicio <= $3)
		ORDER BY fecha_inicio, id`, delegationID, dr.From, dr.To)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shift
	for rows.Next() {
		var s entity.Shift
		if err := rows.Scan(&s.ID, &s.DelegationID, &s.Start, &s.End, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func mapShiftWriteErr(op string, err error) error {
	switch {
	case isCheckViolation(err):
		return domain.ErrInvalidRange
	case isForeignKeyViolation(err):
		return domain.ErrUnknownDelegation
	}
	return fmt.Errorf("%s: %w", op, err)
}
