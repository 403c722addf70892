package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/membership"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// GroupHandler maneja grupos: alta, listado, membresías y cambio de owner.
type GroupHandler struct {
	groupUC      *usecase.GroupUseCase
	membershipUC *membership.UseCase
	errors       ErrorMapper
}

// NewGroupHandler construye el handler.
func NewGroupHandler(groupUC *usecase.GroupUseCase, membershipUC *membership.UseCase, errors ErrorMapper) *GroupHandler {
	return &GroupHandler{groupUC: groupUC, membershipUC: membershipUC, errors: errors}
}

// Create godoc
// @Summary      Crear grupo
// @Tags         groups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGroupRequest  true  "name, ownerId"
// @Success      201   {object}  dto.GroupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/groups [post]
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.OwnerID == "" {
		in.OwnerID = GetUserID(c)
	}
	out, err := h.groupUC.Create(c.UserContext(), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar grupos
// @Tags         groups
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (1..100, default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.GroupListResponse
// @Router       /api/groups [get]
func (h *GroupHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.groupUC.List(c.UserContext(), page)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener grupo por ID
// @Tags         groups
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del grupo"
// @Success      200  {object}  dto.GroupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/groups/{id} [get]
func (h *GroupHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.groupUC.GetByID(c.UserContext(), id)
	if err != nil {
		return h.errors.Write(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Success: false, Message: "grupo no encontrado"})
	}
	return c.JSON(out)
}

// AddUsers godoc
// @Summary      Añadir usuarios a un grupo
// @Tags         groups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        groupId  path  string  true  "ID del grupo"
// @Param        body     body  dto.AddUsersRequest  true  "userIds"
// @Success      200  {object}  dto.MembershipResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/groups/{groupId}/add-users [post]
func (h *GroupHandler) AddUsers(c *fiber.Ctx) error {
	groupID := c.Params("groupId")
	if groupID == "" {
		return badRequest(c, "groupId es requerido")
	}
	var in dto.AddUsersRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.AddedBy == "" {
		in.AddedBy = GetUserID(c)
	}
	out, err := h.membershipUC.AddUsersToGroup(c.UserContext(), groupID, in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// ChangeOwner godoc
// @Summary      Cambiar el owner de un grupo
// @Tags         groups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del grupo"
// @Param        body  body  dto.ChangeOwnerRequest  true  "newOwnerId o newOwnerUsername"
// @Success      200  {object}  dto.ChangeOwnerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/groups/{id}/change-owner [post]
func (h *GroupHandler) ChangeOwner(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id es requerido")
	}
	var in dto.ChangeOwnerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.ChangedBy == "" {
		in.ChangedBy = GetUserID(c)
	}
	out, err := h.groupUC.ChangeOwner(c.UserContext(), id, in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}
