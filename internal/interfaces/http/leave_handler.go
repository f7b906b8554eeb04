package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/application/leave"
	"github.com/jhoicas/guardias-api/internal/domain/repository"
)

// LeaveHandler maneja /api/permisos y /api/equipos/:id/permisos.
type LeaveHandler struct {
	e *leave.Engine
}

// NewLeaveHandler construye el handler.
func NewLeaveHandler(e *leave.Engine) *LeaveHandler {
	return &LeaveHandler{e: e}
}

// Create godoc
// @Summary      Solicitar permiso
// @Tags         permisos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeaveRequest  true  "Permiso"
// @Success      201   {object}  dto.LeaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/permisos [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeaveRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	start, err := parseDate("fecha_inicio", in.FechaInicio)
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseDate("fecha_fin", in.FechaFin)
	if err != nil {
		return respondError(c, err)
	}
	req, err := h.e.RequestLeave(c.UserContext(), CallerFrom(c), leave.RequestLeaveCommand{
		TypeID: in.TipoID,
		Start:  start,
		End:    end,
		Notes:  in.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LeaveFromEntity(req))
}

// Decide godoc
// @Summary      Aprobar, rechazar o cancelar un permiso pendiente
// @Tags         permisos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del permiso"
// @Param        body  body  dto.DecideLeaveRequest  true  "Estado destino"
// @Success      200   {object}  dto.LeaveResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permisos/{id}/decidir [patch]
func (h *LeaveHandler) Decide(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.DecideLeaveRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	req, err := h.e.DecideLeave(c.UserContext(), CallerFrom(c), id, leave.DecideLeaveCommand{
		StatusID: in.EstadoID,
		Notes:    in.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LeaveFromEntity(req))
}

func (h *LeaveHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	req, err := h.e.GetLeaveRequest(c.UserContext(), CallerFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LeaveFromEntity(req))
}

// Mine admite los filtros anio, tipo_id y estado_id.
func (h *LeaveHandler) Mine(c *fiber.Ctx) error {
	var (
		f   repository.LeaveFilter
		err error
	)
	if f.Year, err = queryYear(c); err != nil {
		return respondError(c, err)
	}
	if f.TypeID, err = queryInt64(c, "tipo_id"); err != nil {
		return respondError(c, err)
	}
	if f.StatusID, err = queryInt64(c, "estado_id"); err != nil {
		return respondError(c, err)
	}
	list, err := h.e.ListOwnLeaveRequests(c.UserContext(), CallerFrom(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LeavesFromEntities(list))
}

func (h *LeaveHandler) ByTeam(c *fiber.Ctx) error {
	teamID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	year, err := queryYear(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.e.ListTeamLeaveRequests(c.UserContext(), CallerFrom(c), teamID, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LeavesFromEntities(list))
}

func (h *LeaveHandler) Types(c *fiber.Ctx) error {
	list, err := h.e.ListLeaveTypes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CatalogItem, 0, len(list))
	for _, t := range list {
		out = append(out, dto.CatalogItem{ID: t.ID, Codigo: t.Code, Nombre: t.Name})
	}
	return c.JSON(out)
}

func (h *LeaveHandler) Statuses(c *fiber.Ctx) error {
	list, err := h.e.ListLeaveStatuses(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CatalogItem, 0, len(list))
	for _, s := range list {
		out = append(out, dto.CatalogItem{ID: s.ID, Codigo: s.Code, Nombre: s.Name})
	}
	return c.JSON(out)
}
