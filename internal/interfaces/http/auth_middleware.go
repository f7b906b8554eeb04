package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	"github.com/jhoicas/guardias-api/pkg/jwt"
)

// LocalCaller clave de Fiber Locals con la identidad del token.
const LocalCaller = "caller"

// AuthMiddleware valida el Bearer Token JWT y deja un entity.Caller en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCaller, entity.Caller{
			UserID:       id.UserID,
			RoleID:       id.RoleID,
			DelegationID: id.DelegationID,
		})
		return c.Next()
	}
}

// CallerFrom devuelve la identidad cargada por AuthMiddleware. Fuera de una ruta
// protegida devuelve el valor cero, que ningún caso de uso autoriza.
func CallerFrom(c *fiber.Ctx) entity.Caller {
	caller, _ := c.Locals(LocalCaller).(entity.Caller)
	return caller
}
