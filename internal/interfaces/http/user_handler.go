package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/membership"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// UserHandler maneja búsqueda de usuarios y membresías desde el lado usuario.
type UserHandler struct {
	userUC       *usecase.UserUseCase
	membershipUC *membership.UseCase
	errors       ErrorMapper
}

// NewUserHandler construye el handler.
func NewUserHandler(userUC *usecase.UserUseCase, membershipUC *membership.UseCase, errors ErrorMapper) *UserHandler {
	return &UserHandler{userUC: userUC, membershipUC: membershipUC, errors: errors}
}

// Search godoc
// @Summary      Buscar usuarios por username, email o nombre
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  true   "término de búsqueda"
// @Param        limit  query  int     false  "máximo de filas (1..100, default 20)"
// @Success      200  {object}  dto.SearchUsersResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchUsersRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.userUC.Search(c.UserContext(), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// AddToGroups godoc
// @Summary      Añadir un usuario a varios grupos
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Param        body    body  dto.AddToGroupsRequest  true  "groupIds"
// @Success      200  {object}  dto.MembershipResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/{userId}/add-to-groups [post]
func (h *UserHandler) AddToGroups(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return badRequest(c, "userId es requerido")
	}
	var in dto.AddToGroupsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.AddedBy == "" {
		in.AddedBy = GetUserID(c)
	}
	out, err := h.membershipUC.AddUserToGroups(c.UserContext(), userID, in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}
