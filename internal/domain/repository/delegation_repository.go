package repository

import (
	"context"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// DelegationRepository define el puerto de persistencia para Delegation.
type DelegationRepository interface {
	Create(ctx context.Context, d *entity.Delegation) error
	GetByID(ctx context.Context, id int64) (*entity.Delegation, error)
	List(ctx context.Context) ([]*entity.Delegation, error)
	Update(ctx context.Context, d *entity.Delegation) error
}
