package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/guardias-api/internal/application/auth"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/internal/testutil/memstore"
	"github.com/jhoicas/guardias-api/pkg/jwt"
)

const secret = "test-secret"

func newUser(t *testing.T, store *memstore.Store, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{FirstName: "Ane", Email: email, PasswordHash: hash, RoleID: 2, DelegationID: 3, Active: active}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func TestLogin_EmiteTokenConIdentidad(t *testing.T) {
	store := memstore.New()
	u := newUser(t, store, "ane@empresa.local", "Secreta123", true)
	uc := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 15, Issuer: "test"})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANE@empresa.local", Password: "Secreta123"})
	require.NoError(t, err)
	assert.Equal(t, 900, out.ExpiresIn)
	assert.Equal(t, u.ID, out.User.ID)

	id, err := jwt.Parse(secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: u.ID, RoleID: 2, DelegationID: 3}, id)

	stored, err := store.Users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin, "el login registra el último acceso")
}

func TestLogin_Rechazos(t *testing.T) {
	store := memstore.New()
	newUser(t, store, "ane@empresa.local", "Secreta123", true)
	newUser(t, store, "baja@empresa.local", "Secreta123", false)
	uc := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 15, Issuer: "test"})
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ane@empresa.local", Password: "otraClave1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@empresa.local", Password: "Secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@empresa.local", Password: "Secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
