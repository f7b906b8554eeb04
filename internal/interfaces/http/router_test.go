package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/guardias-api/internal/application/auth"
	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/application/leave"
	"github.com/jhoicas/guardias-api/internal/application/membership"
	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/application/usecase"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/guardias-api/internal/interfaces/http"
	"github.com/jhoicas/guardias-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/guardias-api/pkg/jwt"
	"github.com/jhoicas/guardias-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app   *fiber.App
	store *memstore.Store
	cat   memstore.Catalogs

	bilbao int64
	madrid int64

	admin      string
	supervisor string
	tecnico    string
	tecnicoID  int64
	lucia      string
	luciaID    int64
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store, cat := memstore.NewSeeded()
	f := &apiFixture{store: store, cat: cat}
	f.bilbao = store.AddDelegation("Bilbao")
	f.madrid = store.AddDelegation("Madrid")

	f.admin, _ = f.login(t, "admin", cat.RoleAdmin, f.bilbao)
	f.supervisor, _ = f.login(t, "supervisor", cat.RoleSupervisor, f.bilbao)
	f.tecnico, f.tecnicoID = f.login(t, "ane", cat.RoleTechnician, f.bilbao)
	f.lucia, f.luciaID = f.login(t, "lucia", cat.RoleTechnician, f.madrid)

	policy := authz.NewRolePolicy(store.Roles)
	registry := membership.NewRegistry(policy, store.Teams, store.Memberships, store.Users, store.Delegations)
	f.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(f.app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 15, Issuer: testIssuer}),
		UserUC:       usecase.NewUserUseCase(policy, store.Users, store.Roles, store.Delegations),
		DelegationUC: usecase.NewDelegationUseCase(policy, store.Delegations),
		RoleUC:       usecase.NewRoleUseCase(policy, store.Roles),
		Scheduler: scheduling.NewScheduler(store, policy, store.Shifts, store.Assignments, store.GuardRoles,
			store.Delegations, pdf.NewMarotoRosterGenerator(time.UTC)),
		Registry:  registry,
		Leaves:    leave.NewEngine(store, policy, store.Leaves, store.Catalog, registry),
		JWTSecret: testJWTSecret,
		Logger:    logger.Nop(),
	})
	return f
}

// login da de alta un usuario y devuelve su cabecera Authorization.
func (f *apiFixture) login(t *testing.T, name string, roleID, delegationID int64) (string, int64) {
	t.Helper()
	id := f.store.AddUser(name, roleID, delegationID)
	return bearer(t, testJWTSecret, pkgjwt.Identity{UserID: id, RoleID: roleID, DelegationID: delegationID}), id
}

func (f *apiFixture) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// futureSlot devuelve inicio y fin RFC 3339 de una franja a partir de pasado mañana.
func futureSlot(fromHour, toHour int) (string, string) {
	base := time.Now().UTC().Truncate(24 * time.Hour).Add(48 * time.Hour)
	start := base.Add(time.Duration(fromHour) * time.Hour)
	end := base.Add(time.Duration(toHour) * time.Hour)
	return start.Format(time.RFC3339), end.Format(time.RFC3339)
}

func (f *apiFixture) proposeShift(t *testing.T, fromHour, toHour int, assignees ...int64) dto.ShiftResponse {
	t.Helper()
	start, end := futureSlot(fromHour, toHour)
	asig := make([]dto.AssignmentRequest, 0, len(assignees))
	for _, id := range assignees {
		asig = append(asig, dto.AssignmentRequest{UsuarioID: id, RolGuardiaID: f.cat.GuardPrincipal})
	}
	resp := f.do(t, http.MethodPost, "/api/guardias", f.supervisor, dto.CreateShiftRequest{
		FechaInicio: start, FechaFin: end, Asignaciones: asig,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ShiftResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Público
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, resp).Status)
}

func TestRutaInexistente_404ConCuerpoDeError(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodGet, "/nada", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestLogin_PorHTTP(t *testing.T) {
	f := newAPIFixture(t)
	hash, err := auth.HashPassword("Secreta123")
	require.NoError(t, err)
	require.NoError(t, f.store.Users.Create(context.Background(), &entity.User{
		FirstName: "Miren", Email: "miren@empresa.local", PasswordHash: hash,
		RoleID: f.cat.RoleTechnician, DelegationID: f.bilbao, Active: true,
	}))

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "miren@empresa.local", Password: "Secreta123"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.AccessToken)

	// El token emitido abre las rutas protegidas.
	resp = f.do(t, http.MethodGet, "/api/usuarios/me", "Bearer "+out.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "miren@empresa.local", decode[dto.UserResponse](t, resp).Email)

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "miren@empresa.local", Password: "Incorrecta1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "email", body.Fields["email"])
	assert.Equal(t, "required", body.Fields["password"])
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	f := newAPIFixture(t)
	for _, path := range []string{"/api/guardias", "/api/permisos/mios", "/api/equipos", "/api/usuarios/me"} {
		resp := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardias
// ──────────────────────────────────────────────────────────────────────────────

func TestGuardias_ProponerYSolape(t *testing.T) {
	f := newAPIFixture(t)
	shift := f.proposeShift(t, 8, 20, f.tecnicoID)
	assert.Equal(t, f.bilbao, shift.DelegacionID)
	require.Len(t, shift.Asignaciones, 1)
	assert.Equal(t, f.tecnicoID, shift.Asignaciones[0].UsuarioID)

	start, end := futureSlot(19, 23)
	resp := f.do(t, http.MethodPost, "/api/guardias", f.supervisor, dto.CreateShiftRequest{FechaInicio: start, FechaFin: end})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "OVERLAP_CONFLICT", errorCode(t, resp))

	// Contigua: fin == inicio no es solape.
	start, end = futureSlot(20, 23)
	resp = f.do(t, http.MethodPost, "/api/guardias", f.supervisor, dto.CreateShiftRequest{FechaInicio: start, FechaFin: end})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestGuardias_ErroresDeEntrada(t *testing.T) {
	f := newAPIFixture(t)

	start, end := futureSlot(10, 8)
	resp := f.do(t, http.MethodPost, "/api/guardias", f.supervisor, dto.CreateShiftRequest{FechaInicio: start, FechaFin: end})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_RANGE", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/guardias", f.supervisor, dto.CreateShiftRequest{FechaInicio: "ayer", FechaFin: end})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	start, end = futureSlot(8, 10)
	resp = f.do(t, http.MethodPost, "/api/guardias", f.supervisor, dto.CreateShiftRequest{
		FechaInicio: start, FechaFin: end,
		Asignaciones: []dto.AssignmentRequest{{UsuarioID: f.luciaID, RolGuardiaID: f.cat.GuardPrincipal}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CROSS_DELEGATION_ASSIGNMENT", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/guardias", f.tecnico, dto.CreateShiftRequest{FechaInicio: start, FechaFin: end})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/guardias?desde=2025-03-10&hasta=2025-03-01", f.supervisor, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_RANGE", errorCode(t, resp))
}

func TestGuardias_ListarReprogramarYBorrar(t *testing.T) {
	f := newAPIFixture(t)
	shift := f.proposeShift(t, 8, 20)

	resp := f.do(t, http.MethodGet, "/api/guardias", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ShiftResponse](t, resp), 1)

	// Otra delegación: un técnico no puede leerla.
	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/guardias?delegacion_id=%d", f.bilbao), f.lucia, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	estado := "confirmada"
	resp = f.do(t, http.MethodPatch, fmt.Sprintf("/api/guardias/%d", shift.ID), f.supervisor, dto.UpdateShiftRequest{Estado: &estado})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmada", decode[dto.ShiftResponse](t, resp).Estado)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("/api/guardias/%d", shift.ID), f.supervisor, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/guardias/%d", shift.ID), f.supervisor, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestGuardias_MiasYProxima(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/api/guardias/proxima", f.tecnico, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	later := f.proposeShift(t, 30, 40, f.tecnicoID)
	first := f.proposeShift(t, 8, 20, f.tecnicoID)

	resp = f.do(t, http.MethodGet, "/api/guardias/mias", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.MyShiftResponse](t, resp), 2)

	resp = f.do(t, http.MethodGet, "/api/guardias/proxima", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	next := decode[dto.MyShiftResponse](t, resp)
	assert.Equal(t, first.ID, next.Guardia.ID)
	assert.NotEqual(t, later.ID, next.Guardia.ID)
	assert.Equal(t, f.cat.GuardPrincipal, next.RolGuardia.ID)
}

func TestGuardias_RolesYCuadrante(t *testing.T) {
	f := newAPIFixture(t)
	f.proposeShift(t, 8, 20, f.tecnicoID)

	resp := f.do(t, http.MethodGet, "/api/guardias/roles", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CatalogItem](t, resp), 2)

	resp = f.do(t, http.MethodGet, "/api/guardias/cuadrante", f.supervisor, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), fmt.Sprintf("cuadrante-%d.pdf", f.bilbao))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestPermisos_SolicitarYDecidir(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/permisos", f.tecnico, dto.CreateLeaveRequest{
		TipoID: f.cat.TypeVacaciones, FechaInicio: "2025-07-01", FechaFin: "2025-07-15",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.LeaveResponse](t, resp)
	assert.Equal(t, f.cat.StatusPending, created.EstadoID)
	assert.Equal(t, f.tecnicoID, created.UsuarioID)

	path := fmt.Sprintf("/api/permisos/%d/decidir", created.ID)

	resp = f.do(t, http.MethodPatch, path, f.tecnico, dto.DecideLeaveRequest{EstadoID: f.cat.StatusApproved})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPatch, path, f.supervisor, dto.DecideLeaveRequest{EstadoID: f.cat.StatusPending})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))

	resp = f.do(t, http.MethodPatch, path, f.supervisor, dto.DecideLeaveRequest{EstadoID: f.cat.StatusApproved})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decided := decode[dto.LeaveResponse](t, resp)
	assert.Equal(t, f.cat.StatusApproved, decided.EstadoID)
	require.NotNil(t, decided.DecididoPor)

	// Un estado final no admite otra decisión.
	resp = f.do(t, http.MethodPatch, path, f.supervisor, dto.DecideLeaveRequest{EstadoID: f.cat.StatusRejected})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))

	// Solo el propietario o un supervisor lo ven.
	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/permisos/%d", created.ID), f.lucia, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestPermisos_ErroresDeEntrada(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/permisos", f.tecnico, dto.CreateLeaveRequest{
		TipoID: f.cat.TypeVacaciones, FechaInicio: "2025-07-15", FechaFin: "2025-07-01",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_RANGE", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/permisos", f.tecnico, dto.CreateLeaveRequest{
		TipoID: 9999, FechaInicio: "2025-07-01", FechaFin: "2025-07-01",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_LEAVE_TYPE", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/permisos/mios?anio=dosmil", f.tecnico, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestPermisos_MiosYCatalogos(t *testing.T) {
	f := newAPIFixture(t)
	for _, r := range []dto.CreateLeaveRequest{
		{TipoID: f.cat.TypeVacaciones, FechaInicio: "2024-08-01", FechaFin: "2024-08-10"},
		{TipoID: f.cat.TypeBajaMedica, FechaInicio: "2025-02-03", FechaFin: "2025-02-05"},
	} {
		resp := f.do(t, http.MethodPost, "/api/permisos", f.tecnico, r)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := f.do(t, http.MethodGet, "/api/permisos/mios", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	all := decode[[]dto.LeaveResponse](t, resp)
	require.Len(t, all, 2)
	assert.Equal(t, "2025-02-03", all[0].FechaInicio, "más recientes primero")

	resp = f.do(t, http.MethodGet, "/api/permisos/mios?anio=2024", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.LeaveResponse](t, resp), 1)

	resp = f.do(t, http.MethodGet, "/api/permisos/mios", f.lucia, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.LeaveResponse](t, resp))

	resp = f.do(t, http.MethodGet, "/api/permisos/tipos", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CatalogItem](t, resp), 2)

	resp = f.do(t, http.MethodGet, "/api/permisos/estados", f.tecnico, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CatalogItem](t, resp), 4)
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipos
// ──────────────────────────────────────────────────────────────────────────────

func TestEquipos_AltaMiembrosYPermisos(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/equipos", f.supervisor, dto.CreateTeamRequest{NombreEquipo: "Redes", DelegacionID: f.bilbao})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/equipos", f.admin, dto.CreateTeamRequest{NombreEquipo: "Redes", DelegacionID: f.bilbao})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	team := decode[dto.TeamResponse](t, resp)

	members := fmt.Sprintf("/api/equipos/%d/miembros", team.ID)
	resp = f.do(t, http.MethodPost, members, f.supervisor, dto.AddMemberRequest{UsuarioID: f.tecnicoID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, members, f.supervisor, dto.AddMemberRequest{UsuarioID: f.tecnicoID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, members, f.supervisor, dto.AddMemberRequest{UsuarioID: f.luciaID})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CROSS_DELEGATION_VIOLATION", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/equipos/%d", team.ID), f.supervisor, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decode[dto.TeamResponse](t, resp)
	require.Len(t, detail.Miembros, 1)
	assert.Equal(t, f.tecnicoID, detail.Miembros[0].ID)

	resp = f.do(t, http.MethodPost, "/api/permisos", f.tecnico, dto.CreateLeaveRequest{
		TipoID: f.cat.TypeVacaciones, FechaInicio: "2025-07-01", FechaFin: "2025-07-15",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/equipos/%d/permisos?anio=2025", team.ID), f.supervisor, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.LeaveResponse](t, resp), 1)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", members, f.tecnicoID), f.supervisor, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", members, f.tecnicoID), f.supervisor, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración
// ──────────────────────────────────────────────────────────────────────────────

func TestAdministracion_SoloAdmin(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/api/roles", f.tecnico, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/roles", f.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CatalogItem](t, resp), 3)

	resp = f.do(t, http.MethodGet, "/api/delegaciones", f.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.DelegationResponse](t, resp), 2)

	resp = f.do(t, http.MethodPost, "/api/usuarios", f.admin, dto.CreateUserRequest{
		Nombre: "Iker", Apellidos: "Etxebarria", Email: "Iker@Empresa.local", Password: "Temporal1",
		RolID: f.cat.RoleTechnician, DelegacionID: f.bilbao,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "iker@empresa.local", created.Email)
	assert.True(t, created.RequiereReset)

	resp = f.do(t, http.MethodPost, "/api/usuarios", f.admin, dto.CreateUserRequest{
		Nombre: "Iker", Apellidos: "Bis", Email: "iker@empresa.local", Password: "Temporal1",
		RolID: f.cat.RoleTechnician, DelegacionID: f.bilbao,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))
}
