package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/guardias-api/internal/application/auth"
	"github.com/jhoicas/guardias-api/internal/application/authz"
	"github.com/jhoicas/guardias-api/internal/application/leave"
	"github.com/jhoicas/guardias-api/internal/application/membership"
	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/guardias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/guardias-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/guardias-api/internal/interfaces/http"
	"github.com/jhoicas/guardias-api/pkg/config"
	"github.com/jhoicas/guardias-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	delegationRepo := postgres.NewDelegationRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	guardRoleRepo := postgres.NewGuardRoleRepository(pool)
	leaveRepo := postgres.NewLeaveRepository(pool)
	leaveCatalogRepo := postgres.NewLeaveCatalogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rolePolicy := authz.NewRolePolicy(roleRepo)

	// Cuadrante PDF en la hora local de las delegaciones.
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria desconocida, se usa UTC")
		loc = time.UTC
	}
	rosterPDF := infrapdf.NewMarotoRosterGenerator(loc)

	scheduler := scheduling.NewScheduler(
		txRunner, rolePolicy,
		shiftRepo, assignmentRepo, guardRoleRepo, delegationRepo,
		rosterPDF,
	)
	registry := membership.NewRegistry(rolePolicy, teamRepo, membershipRepo, userRepo, delegationRepo)
	leaveEngine := leave.NewEngine(txRunner, rolePolicy, leaveRepo, leaveCatalogRepo, registry)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(rolePolicy, userRepo, roleRepo, delegationRepo)
	delegationUC := usecase.NewDelegationUseCase(rolePolicy, delegationRepo)
	roleUC := usecase.NewRoleUseCase(rolePolicy, roleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en /docs si hay especificación generada.
	if cfg.Swagger.File != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.File,
			Path:     "docs",
			Title:    "Guardias API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		DelegationUC: delegationUC,
		RoleUC:       roleUC,
		Scheduler:    scheduler,
		Registry:     registry,
		Leaves:       leaveEngine,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
