package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

var _ repository.DelegationRepository = (*DelegationRepo)(nil)

// DelegationRepo tabla delegaciones.
type DelegationRepo struct {
	q Querier
}

// NewDelegationRepository construye el adaptador.
func NewDelegationRepository(q Querier) *DelegationRepo {
	return &DelegationRepo{q: q}
}

const delegationColumns = `id, nombre, codigo, pais_code, region_code, activo`

func (r *DelegationRepo) Create(ctx context.Context, d *entity.Delegation) error {
	query := `
		INSERT INTO delegaciones (nombre, codigo, pais_code, region_code, activo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, d.Name, d.Code, d.CountryCode, d.RegionCode, d.Active).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert delegation: %w", err)
	}
	return nil
}

func (r *DelegationRepo) GetByID(ctx context.Context, id int64) (*entity.Delegation, error) {
	var d entity.Delegation
	err := r.q.QueryRow(ctx, `SELECT `+delegationColumns+` FROM delegaciones WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Code, &d.CountryCode, &d.RegionCode, &d.Active)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delegation: %w", err)
	}
	return &d, nil
}

func (r *DelegationRepo) List(ctx context.Context) ([]*entity.Delegation, error) {
	rows, err := r.q.Query(ctx, `SELECT `+delegationColumns+` FROM delegaciones ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list delegations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delegation
	for rows.Next() {
		var d entity.Delegation
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.CountryCode, &d.RegionCode, &d.Active); err != nil {
			return nil, fmt.Errorf("scan delegation: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DelegationRepo) Update(ctx context.Context, d *entity.Delegation) error {
	query := `
		UPDATE delegaciones SET nombre = $2, codigo = $3, pais_code = $4, region_code = $5, activo = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, d.ID, d.Name, d.Code, d.CountryCode, d.RegionCode, d.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update delegation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
