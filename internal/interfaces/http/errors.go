package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/application/leave"
	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable traduce los errores de dominio. El orden importa: gana la primera coincidencia.
var errorTable = []errorMapping{
	{domain.ErrInvalidRange, fiber.StatusBadRequest, "INVALID_RANGE"},
	{domain.ErrOverlapConflict, fiber.StatusConflict, "OVERLAP_CONFLICT"},
	{domain.ErrDuplicateAssignment, fiber.StatusBadRequest, "DUPLICATE_ASSIGNMENT"},
	{domain.ErrUnknownUser, fiber.StatusBadRequest, "UNKNOWN_USER"},
	{domain.ErrUnknownGuardRole, fiber.StatusBadRequest, "UNKNOWN_GUARD_ROLE"},
	{domain.ErrCrossDelegationAssignment, fiber.StatusBadRequest, "CROSS_DELEGATION_ASSIGNMENT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrRoleNotFound, fiber.StatusInternalServerError, "ROLE_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrUnknownStatus, fiber.StatusBadRequest, "UNKNOWN_STATUS"},
	{domain.ErrUnknownLeaveType, fiber.StatusBadRequest, "UNKNOWN_LEAVE_TYPE"},
	{domain.ErrCrossDelegationViolation, fiber.StatusBadRequest, "CROSS_DELEGATION_VIOLATION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnknownDelegation, fiber.StatusBadRequest, "UNKNOWN_DELEGATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{scheduling.ErrPDFUnavailable, fiber.StatusServiceUnavailable, "PDF_UNAVAILABLE"},
	{leave.ErrPendingStatusMissing, fiber.StatusInternalServerError, "CATALOG_INCOMPLETE"},
}

// respondError escribe la respuesta de error. Los 5xx se registran y no exponen el detalle.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: verr.Error(), Fields: verr.fields,
		})
	}
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			status, code = m.status, m.code
			break
		}
	}
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error no controlado")
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler para fiber.Config: errores de Fiber (ruta inexistente, método no permitido)
// con el mismo cuerpo que los de dominio.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code := "HTTP_ERROR"
		switch ferr.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: code, Message: ferr.Message})
	}
	return respondError(c, err)
}
