package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/guardias-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateYParse(t *testing.T) {
	id := jwt.Identity{UserID: 7, RoleID: 2, DelegationID: 3}
	tok, err := jwt.Generate(secret, id, "guardias-test", 15)
	require.NoError(t, err)

	got, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rechazos(t *testing.T) {
	id := jwt.Identity{UserID: 7, RoleID: 2, DelegationID: 3}

	expired, err := jwt.Generate(secret, id, "guardias-test", -1)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, expired)
	assert.Error(t, err, "token expirado")

	tok, err := jwt.Generate(secret, id, "guardias-test", 15)
	require.NoError(t, err)
	_, err = jwt.Parse("otro-secret", tok)
	assert.Error(t, err, "firma incorrecta")

	_, err = jwt.Parse("", tok)
	assert.Error(t, err)

	_, err = jwt.Generate("", id, "x", 15)
	assert.Error(t, err)
}

func TestParse_ClaimsIncompletos(t *testing.T) {
	claims := jwt.Claims{UserID: 7}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}
