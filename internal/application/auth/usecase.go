package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/domain"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
	"github.com/jhoicas/guardias-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, registra el último acceso y emite un token de acceso
// con usuario, rol y delegación.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	// Mismo error para usuario inexistente y contraseña incorrecta.
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if !CheckPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	if err := uc.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:       user.ID,
		RoleID:       user.RoleID,
		DelegationID: user.DelegationID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
		User:        dto.UserFromEntity(user),
	}, nil
}

// HashPassword aplica bcrypt con el coste por defecto.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara una contraseña con su hash bcrypt.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
