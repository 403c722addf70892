package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc     *auth.UseCase
	errors ErrorMapper
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, errors ErrorMapper) *AuthHandler {
	return &AuthHandler{uc: uc, errors: errors}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}
