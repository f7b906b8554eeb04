//go:build integration

package postgres_test

// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/application/leave"
	"github.com/jhoicas/guardias-api/internal/application/membership"
	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
	"github.com/jhoicas/guardias-api/internal/infrastructure/postgres"
)

// ── Entorno ──────────────────────────────────────────────────────────────────

type env struct {
	pool       *pgxpool.Pool
	roles      map[string]int64
	guardRoles map[string]int64
	statuses   map[string]int64
	leaveType  int64
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("guardias_test"),
		tcPostgres.WithUsername("guardias"),
		tcPostgres.WithPassword("guardias"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	// Idempotente.
	require.NoError(t, postgres.Migrate(ctx, pool))

	e := &env{pool: pool, roles: map[string]int64{}, guardRoles: map[string]int64{}, statuses: map[string]int64{}}
	roles, err := postgres.NewRoleRepository(pool).List(ctx)
	require.NoError(t, err)
	for _, r := range roles {
		e.roles[r.Code] = r.ID
	}
	grs, err := postgres.NewGuardRoleRepository(pool).List(ctx)
	require.NoError(t, err)
	for _, g := range grs {
		e.guardRoles[g.Code] = g.ID
	}
	cat := postgres.NewLeaveCatalogRepository(pool)
	sts, err := cat.ListStatuses(ctx)
	require.NoError(t, err)
	for _, s := range sts {
		e.statuses[s.Code] = s.ID
	}
	types, err := cat.ListTypes(ctx)
	require.NoError(t, err)
	for _, lt := range types {
		if lt.Code == "VACACIONES" {
			e.leaveType = lt.ID
		}
	}
	return e
}

func (e *env) delegation(t *testing.T, name string) int64 {
	t.Helper()
	d := &entity.Delegation{Name: name, Active: true}
	require.NoError(t, postgres.NewDelegationRepository(e.pool).Create(context.Background(), d))
	return d.ID
}

func (e *env) user(t *testing.T, email, roleCode string, delegationID int64) entity.Caller {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		FirstName: email, Email: email, PasswordHash: "x", RoleID: e.roles[roleCode],
		DelegationID: delegationID, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewUserRepository(e.pool).Create(context.Background(), u))
	return entity.Caller{UserID: u.ID, RoleID: u.RoleID, DelegationID: delegationID}
}

func (e *env) scheduler() *scheduling.Scheduler {
	return scheduling.NewScheduler(
		postgres.NewTxRunner(e.pool),
		authz.NewRolePolicy(postgres.NewRoleRepository(e.pool)),
		postgres.NewShiftRepository(e.pool),
		postgres.NewAssignmentRepository(e.pool),
		postgres.NewGuardRoleRepository(e.pool),
		postgres.NewDelegationRepository(e.pool),
		nil,
	)
}

func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

// ── Guardias ─────────────────────────────────────────────────────────────────

func TestGuardias_PropuestasConcurrentesSoloUnaGana(t *testing.T) {
	e := setup(t)
	bilbao := e.delegation(t, "Bilbao")
	sup := e.user(t, "sup@empresa.local", entity.RoleCodeSupervisor, bilbao)
	s := e.scheduler()

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		overlaps int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Todas solapan con todas: [1 08:00 + i h, 2 08:00 + i h)
			start := at(1, 8).Add(time.Duration(i) * time.Hour)
			_, err := s.ProposeShift(context.Background(), sup, scheduling.ProposeShiftCommand{Start: start, End: start.Add(24 * time.Hour)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrOverlapConflict):
				overlaps++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, overlaps)

	list, err := postgres.NewShiftRepository(e.pool).ListByDelegation(context.Background(), bilbao, schedule.DateRange{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGuardias_ContiguasYAsignaciones(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	bilbao := e.delegation(t, "Bilbao")
	araba := e.delegation(t, "Araba")
	sup := e.user(t, "sup@empresa.local", entity.RoleCodeSupervisor, bilbao)
	ane := e.user(t, "ane@empresa.local", entity.RoleCodeTechnician, bilbao)
	jon := e.user(t, "jon@empresa.local", entity.RoleCodeTechnician, araba)
	s := e.scheduler()

	first, err := s.ProposeShift(ctx, sup, scheduling.ProposeShiftCommand{
		Start: at(1, 8), End: at(2, 8),
		Assignments: []schedule.AssignmentInput{{UserID: ane.UserID, GuardRoleID: e.guardRoles[entity.GuardRolePrincipal]}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultShiftStatus, first.Status)

	// Contigua: [2 08:00, 3 08:00) no solapa.
	_, err = s.ProposeShift(ctx, sup, scheduling.ProposeShiftCommand{Start: at(2, 8), End: at(3, 8)})
	require.NoError(t, err)

	// Otra delegación no cuenta.
	admin := e.user(t, "admin@empresa.local", entity.RoleCodeAdmin, bilbao)
	_, err = s.ProposeShift(ctx, admin, scheduling.ProposeShiftCommand{DelegationID: &araba, Start: at(1, 8), End: at(2, 8)})
	require.NoError(t, err)

	// Asignado de otra delegación: rollback completo.
	_, err = s.ProposeShift(ctx, sup, scheduling.ProposeShiftCommand{
		Start: at(5, 8), End: at(6, 8),
		Assignments: []schedule.AssignmentInput{{UserID: jon.UserID, GuardRoleID: e.guardRoles[entity.GuardRolePrincipal]}},
	})
	assert.ErrorIs(t, err, domain.ErrCrossDelegationAssignment)

	got, err := s.GetShift(ctx, sup, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, ane.UserID, got.Assignments[0].UserID)
	assert.Equal(t, entity.GuardRolePrincipal, got.Assignments[0].GuardRole.Code)

	mine, err := s.ListShiftsForUser(ctx, ane, schedule.DateRange{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].Shift.ID)

	list, err := postgres.NewShiftRepository(e.pool).ListByDelegation(ctx, bilbao, schedule.DateRange{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Borrar la guardia arrastra sus asignaciones.
	require.NoError(t, s.DeleteShift(ctx, sup, first.ID))
	mine, err = s.ListShiftsForUser(ctx, ane, schedule.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestGuardias_CheckDeRango(t *testing.T) {
	e := setup(t)
	bilbao := e.delegation(t, "Bilbao")
	err := postgres.NewShiftRepository(e.pool).Create(context.Background(), &entity.Shift{
		DelegationID: bilbao, Start: at(2, 8), End: at(2, 8), Status: entity.DefaultShiftStatus,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

// ── Equipos y permisos ───────────────────────────────────────────────────────

func TestEquiposYPermisos(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	bilbao := e.delegation(t, "Bilbao")
	sup := e.user(t, "sup@empresa.local", entity.RoleCodeSupervisor, bilbao)
	ane := e.user(t, "ane@empresa.local", entity.RoleCodeTechnician, bilbao)

	rolePolicy := authz.NewRolePolicy(postgres.NewRoleRepository(e.pool))
	registry := membership.NewRegistry(rolePolicy,
		postgres.NewTeamRepository(e.pool),
		postgres.NewMembershipRepository(e.pool),
		postgres.NewUserRepository(e.pool),
		postgres.NewDelegationRepository(e.pool),
	)
	admin := e.user(t, "admin@empresa.local", entity.RoleCodeAdmin, bilbao)
	team, err := registry.CreateTeam(ctx, admin, membership.CreateTeamCommand{Name: "Redes", DelegationID: bilbao})
	require.NoError(t, err)

	_, err = registry.AddMember(ctx, sup, team.ID, ane.UserID)
	require.NoError(t, err)
	_, err = registry.AddMember(ctx, sup, team.ID, ane.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	engine := leave.NewEngine(postgres.NewTxRunner(e.pool), rolePolicy,
		postgres.NewLeaveRepository(e.pool), postgres.NewLeaveCatalogRepository(e.pool), registry)

	req, err := engine.RequestLeave(ctx, ane, leave.RequestLeaveCommand{
		TypeID: e.leaveType,
		Start:  time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveStatusPending, req.Status.Code)

	// Dos decisiones concurrentes: una gana, la otra ve un estado final.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, code := range []string{entity.LeaveStatusApproved, entity.LeaveStatusRejected} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = engine.DecideLeave(ctx, sup, req.ID, leave.DecideLeaveCommand{StatusID: e.statuses[code]})
		}()
	}
	wg.Wait()
	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	year := 2026
	list, err := engine.ListTeamLeaveRequests(ctx, sup, team.ID, &year)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Status.IsTerminal())
	assert.Equal(t, ane.UserID, list[0].User.ID)

	other := 2025
	own, err := engine.ListOwnLeaveRequests(ctx, ane, repository.LeaveFilter{Year: &other})
	require.NoError(t, err)
	assert.Empty(t, own)
}
