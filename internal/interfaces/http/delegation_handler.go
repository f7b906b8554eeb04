package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/application/usecase"
)

// DelegationHandler administración de delegaciones.
type DelegationHandler struct {
	uc *usecase.DelegationUseCase
}

// NewDelegationHandler construye el handler.
func NewDelegationHandler(uc *usecase.DelegationUseCase) *DelegationHandler {
	return &DelegationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear delegación
// @Tags         delegaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDelegationRequest  true  "Datos de la delegación"
// @Success      201   {object}  dto.DelegationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/delegaciones [post]
func (h *DelegationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDelegationRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *DelegationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), CallerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *DelegationHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateDelegationRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), CallerFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
