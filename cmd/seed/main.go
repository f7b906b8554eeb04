// seed prepara una base de datos vacía: aplica las migraciones (que siembran los catálogos),
// crea la delegación por defecto y el administrador inicial, y opcionalmente carga
// delegaciones desde un CSV en ISO-8859-1.
//
// Uso: go run ./cmd/seed [delegaciones.csv]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/guardias-api/internal/application/auth"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/internal/infrastructure/postgres"
	"github.com/jhoicas/guardias-api/pkg/config"
	"github.com/jhoicas/guardias-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	delegationRepo := postgres.NewDelegationRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	code, country, region := "BILBAO", "ES", "Euskadi"
	bilbao, err := ensureDelegation(ctx, delegationRepo, &entity.Delegation{
		Name: "Bilbao", Code: &code, CountryCode: &country, RegionCode: &region, Active: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("delegación por defecto")
	}

	created, err := ensureAdmin(ctx, roleRepo, userRepo, bilbao.ID, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador creado; debe cambiar la contraseña")
	}

	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV")
		}
		defer f.Close()
		list, err := readDelegationsCSV(f)
		if err != nil {
			log.Fatal().Err(err).Msg("leer CSV")
		}
		for _, d := range list {
			if _, err := ensureDelegation(ctx, delegationRepo, d); err != nil {
				log.Fatal().Err(err).Str("delegacion", d.Name).Msg("alta de delegación")
			}
		}
		log.Info().Int("delegaciones", len(list)).Msg("CSV cargado")
	}

	log.Info().Msg("seed completado")
}

// ensureDelegation crea la delegación si no existe otra con el mismo nombre.
func ensureDelegation(ctx context.Context, repo repository.DelegationRepository, d *entity.Delegation) (*entity.Delegation, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range list {
		if existing.Name == d.Name {
			return existing, nil
		}
	}
	if err := repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ensureAdmin crea el administrador inicial si el email no está registrado.
func ensureAdmin(
	ctx context.Context,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	delegationID int64,
	email, password string,
) (bool, error) {
	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	roles, err := roleRepo.List(ctx)
	if err != nil {
		return false, err
	}
	var adminRole *entity.Role
	for _, r := range roles {
		if r.Code == entity.RoleCodeAdmin {
			adminRole = r
			break
		}
	}
	if adminRole == nil {
		return false, fmt.Errorf("no existe el rol %s", entity.RoleCodeAdmin)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	err = userRepo.Create(ctx, &entity.User{
		FirstName:     "Administrador",
		Email:         email,
		PasswordHash:  hash,
		RoleID:        adminRole.ID,
		DelegationID:  delegationID,
		Active:        true,
		RequiresReset: true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
