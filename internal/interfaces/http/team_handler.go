package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/application/membership"
)

// TeamHandler maneja /api/equipos.
type TeamHandler struct {
	r *membership.Registry
}

// NewTeamHandler construye el handler.
func NewTeamHandler(r *membership.Registry) *TeamHandler {
	return &TeamHandler{r: r}
}

func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	team, err := h.r.CreateTeam(c.UserContext(), CallerFrom(c), membership.CreateTeamCommand{
		Name:         in.NombreEquipo,
		DelegationID: in.DelegacionID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TeamFromEntity(team))
}

func (h *TeamHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateTeamRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	team, err := h.r.UpdateTeam(c.UserContext(), CallerFrom(c), id, membership.UpdateTeamCommand{
		Name:         in.NombreEquipo,
		DelegationID: in.DelegacionID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TeamFromEntity(team))
}

// GetByID devuelve el equipo con sus miembros.
func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	team, err := h.r.GetTeam(c.UserContext(), CallerFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TeamFromEntity(team))
}

// List godoc
// @Summary      Listar equipos
// @Description  Los administradores pueden filtrar por delegacion_id; el resto solo ve su delegación.
// @Tags         equipos
// @Security     Bearer
// @Produce      json
// @Param        delegacion_id  query  int  false  "Delegación"
// @Success      200  {array}  dto.TeamResponse
// @Router       /api/equipos [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	delegationID, err := queryInt64(c, "delegacion_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.r.ListTeams(c.UserContext(), CallerFrom(c), delegationID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TeamResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TeamFromEntity(t))
	}
	return c.JSON(out)
}

func (h *TeamHandler) Members(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.r.ListMembers(c.UserContext(), CallerFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UsersBrief(list))
}

// AddMember godoc
// @Summary      Añadir miembro a un equipo
// @Tags         equipos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del equipo"
// @Param        body  body  dto.AddMemberRequest  true  "Usuario"
// @Success      201   {object}  dto.MembershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipos/{id}/miembros [post]
func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddMemberRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	m, err := h.r.AddMember(c.UserContext(), CallerFrom(c), id, in.UsuarioID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MembershipFromEntity(m))
}

func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	userID, err := paramID(c, "usuarioId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.r.RemoveMember(c.UserContext(), CallerFrom(c), id, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
