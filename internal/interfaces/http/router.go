package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/guardias-api/internal/application/auth"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/application/leave"
	"github.com/jhoicas/guardias-api/internal/application/membership"
	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/application/usecase"
	"github.com/jhoicas/guardias-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	DelegationUC *usecase.DelegationUseCase
	RoleUC       *usecase.RoleUseCase
	Scheduler    *scheduling.Scheduler
	Registry     *membership.Registry
	Leaves       *leave.Engine
	JWTSecret    string
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
// Las rutas estáticas de cada grupo van antes que las de /:id.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Guardias
	shifts := protected.Group("/guardias")
	shiftHandler := NewShiftHandler(deps.Scheduler)
	shifts.Get("/", shiftHandler.List)
	shifts.Post("/", shiftHandler.Create)
	shifts.Get("/mias", shiftHandler.Mine)
	shifts.Get("/proxima", shiftHandler.Next)
	shifts.Get("/roles", shiftHandler.GuardRoles)
	shifts.Get("/cuadrante", shiftHandler.Roster)
	shifts.Get("/:id", shiftHandler.GetByID)
	shifts.Patch("/:id", shiftHandler.Update)
	shifts.Delete("/:id", shiftHandler.Delete)

	// Permisos
	leaves := protected.Group("/permisos")
	leaveHandler := NewLeaveHandler(deps.Leaves)
	leaves.Get("/tipos", leaveHandler.Types)
	leaves.Get("/estados", leaveHandler.Statuses)
	leaves.Get("/mios", leaveHandler.Mine)
	leaves.Post("/", leaveHandler.Create)
	leaves.Get("/:id", leaveHandler.GetByID)
	leaves.Patch("/:id/decidir", leaveHandler.Decide)

	// Equipos
	teams := protected.Group("/equipos")
	teamHandler := NewTeamHandler(deps.Registry)
	teams.Get("/", teamHandler.List)
	teams.Post("/", teamHandler.Create)
	teams.Get("/:id", teamHandler.GetByID)
	teams.Patch("/:id", teamHandler.Update)
	teams.Get("/:id/miembros", teamHandler.Members)
	teams.Post("/:id/miembros", teamHandler.AddMember)
	teams.Delete("/:id/miembros/:usuarioId", teamHandler.RemoveMember)
	teams.Get("/:id/permisos", leaveHandler.ByTeam)

	// Delegaciones
	delegations := protected.Group("/delegaciones")
	delegationHandler := NewDelegationHandler(deps.DelegationUC)
	delegations.Get("/", delegationHandler.List)
	delegations.Post("/", delegationHandler.Create)
	delegations.Patch("/:id", delegationHandler.Update)

	// Roles de usuario
	roles := protected.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/", roleHandler.List)
	roles.Patch("/:id", roleHandler.Update)

	// Usuarios
	users := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Patch("/me", userHandler.UpdateMe)
	users.Patch("/me/password", userHandler.ChangePassword)
	users.Post("/", userHandler.Create)
	users.Patch("/:id", userHandler.Update)
}
