package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/application/scheduling"
	"github.com/jhoicas/guardias-api/internal/domain/schedule"
)

// ShiftHandler maneja /api/guardias.
type ShiftHandler struct {
	s   *scheduling.Scheduler
	now func() time.Time
}

// NewShiftHandler construye el handler.
func NewShiftHandler(s *scheduling.Scheduler) *ShiftHandler {
	return &ShiftHandler{s: s, now: time.Now}
}

func toAssignmentInputs(in []dto.AssignmentRequest) []schedule.AssignmentInput {
	out := make([]schedule.AssignmentInput, 0, len(in))
	for _, a := range in {
		out = append(out, schedule.AssignmentInput{UserID: a.UsuarioID, GuardRoleID: a.RolGuardiaID})
	}
	return out
}

// Create godoc
// @Summary      Proponer guardia
// @Description  Crea una guardia con sus asignaciones. Falla con 409 si solapa con otra de la delegación.
// @Tags         guardias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShiftRequest  true  "Guardia"
// @Success      201   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/guardias [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShiftRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	start, err := parseInstant("fecha_inicio", in.FechaInicio, false)
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseInstant("fecha_fin", in.FechaFin, false)
	if err != nil {
		return respondError(c, err)
	}
	shift, err := h.s.ProposeShift(c.UserContext(), CallerFrom(c), scheduling.ProposeShiftCommand{
		DelegationID: in.DelegacionID,
		Start:        start,
		End:          end,
		Status:       in.Estado,
		Assignments:  toAssignmentInputs(in.Asignaciones),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ShiftFromEntity(shift))
}

// Update godoc
// @Summary      Reprogramar guardia
// @Tags         guardias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la guardia"
// @Param        body  body  dto.UpdateShiftRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ShiftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/guardias/{id} [patch]
func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateShiftRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	cmd := scheduling.UpdateShiftCommand{Status: in.Estado}
	if in.FechaInicio != nil {
		t, err := parseInstant("fecha_inicio", *in.FechaInicio, false)
		if err != nil {
			return respondError(c, err)
		}
		cmd.Start = &t
	}
	if in.FechaFin != nil {
		t, err := parseInstant("fecha_fin", *in.FechaFin, false)
		if err != nil {
			return respondError(c, err)
		}
		cmd.End = &t
	}
	if in.Asignaciones != nil {
		items := toAssignmentInputs(*in.Asignaciones)
		cmd.Assignments = &items
	}
	shift, err := h.s.RescheduleShift(c.UserContext(), CallerFrom(c), id, cmd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ShiftFromEntity(shift))
}

func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.s.DeleteShift(c.UserContext(), CallerFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ShiftHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	shift, err := h.s.GetShift(c.UserContext(), CallerFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ShiftFromEntity(shift))
}

// List godoc
// @Summary      Listar guardias de una delegación
// @Tags         guardias
// @Security     Bearer
// @Produce      json
// @Param        delegacion_id  query  int     false  "Delegación (por defecto la propia)"
// @Param        desde          query  string  false  "Inicio mínimo (RFC 3339 o AAAA-MM-DD)"
// @Param        hasta          query  string  false  "Inicio máximo (RFC 3339 o AAAA-MM-DD)"
// @Success      200  {array}  dto.ShiftResponse
// @Router       /api/guardias [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	delegationID, err := queryInt64(c, "delegacion_id")
	if err != nil {
		return respondError(c, err)
	}
	r, err := queryRange(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.s.ListShiftsForDelegation(c.UserContext(), CallerFrom(c), delegationID, r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ShiftsFromEntities(list))
}

// Mine lista las guardias en las que quien llama está asignado.
func (h *ShiftHandler) Mine(c *fiber.Ctx) error {
	r, err := queryRange(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.s.ListShiftsForUser(c.UserContext(), CallerFrom(c), r)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MyShiftResponse, 0, len(list))
	for _, us := range list {
		out = append(out, dto.MyShiftFromEntity(us))
	}
	return c.JSON(out)
}

func (h *ShiftHandler) Next(c *fiber.Ctx) error {
	us, err := h.s.NextShift(c.UserContext(), CallerFrom(c), h.now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MyShiftFromEntity(us))
}

func (h *ShiftHandler) GuardRoles(c *fiber.Ctx) error {
	list, err := h.s.ListGuardRoles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CatalogItem, 0, len(list))
	for _, g := range list {
		out = append(out, dto.GuardRoleFromEntity(g))
	}
	return c.JSON(out)
}

// Roster godoc
// @Summary      Cuadrante de guardias en PDF
// @Tags         guardias
// @Security     Bearer
// @Produce      application/pdf
// @Param        delegacion_id  query  int     false  "Delegación (por defecto la propia)"
// @Param        desde          query  string  false  "Inicio mínimo"
// @Param        hasta          query  string  false  "Inicio máximo"
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/guardias/cuadrante [get]
func (h *ShiftHandler) Roster(c *fiber.Ctx) error {
	delegationID, err := queryInt64(c, "delegacion_id")
	if err != nil {
		return respondError(c, err)
	}
	r, err := queryRange(c)
	if err != nil {
		return respondError(c, err)
	}
	caller := CallerFrom(c)
	pdf, err := h.s.RosterPDF(c.UserContext(), caller, delegationID, r)
	if err != nil {
		return respondError(c, err)
	}
	target := caller.DelegationID
	if delegationID != nil {
		target = *delegationID
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cuadrante-%d.pdf"`, target))
	return c.Send(pdf)
}
