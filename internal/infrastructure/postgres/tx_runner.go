package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/guardias-api/internal/application/leave"
	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

var (
	_ scheduling.TxRunner = (*TxRunner)(nil)
	_ leave.TxRunner      = (*TxRunner)(nil)
)

// shiftLockNamespace es la primera clave del advisory lock de guardias; la segunda es la delegación.
const shiftLockNamespace int32 = 0x6775 // "gu"

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInDelegation abre una transacción y toma el advisory lock de la delegación antes de
// llamar a fn. El lock se libera con el commit o el rollback, así que la comprobación de
// solapamiento y la escritura de dos guardias de la misma delegación nunca se intercalan.
func (r *TxRunner) RunInDelegation(ctx context.Context, delegationID int64, fn func(
	shiftRepo repository.ShiftRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	guardRoleRepo repository.GuardRoleRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		// La segunda clave es int4: las delegaciones no pasan de ese rango.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, shiftLockNamespace, int32(delegationID)); err != nil {
			return fmt.Errorf("lock delegación %d: %w", delegationID, err)
		}
		return fn(
			NewShiftRepository(tx),
			NewAssignmentRepository(tx),
			NewUserRepository(tx),
			NewGuardRoleRepository(tx),
		)
	})
}

// RunLeave abre una transacción con los repos de permisos.
func (r *TxRunner) RunLeave(ctx context.Context, fn func(
	leaveRepo repository.LeaveRequestRepository,
	catalogRepo repository.LeaveCatalogRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewLeaveRepository(tx), NewLeaveCatalogRepository(tx))
	})
}
