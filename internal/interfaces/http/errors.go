package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// ErrorMapper traduce errores de dominio a respuestas HTTP. El mapeo de kind
// a status es cerrado; el mensaje original se preserva siempre y los detalles
// estructurados solo se exponen fuera de producción.
type ErrorMapper struct {
	ExposeDetails bool
}

// statusFor mapea cada kind a su status code.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindNotFound, domain.KindUnique:
		return fiber.StatusBadRequest
	case domain.KindAuthentication:
		return fiber.StatusUnauthorized
	case domain.KindPermission:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// Write escribe la respuesta de error con el status derivado del kind.
func (m ErrorMapper) Write(c *fiber.Ctx, err error) error {
	de := domain.AsError(err)
	body := dto.ErrorResponse{Success: false, Message: de.Message}
	if m.ExposeDetails {
		body.Details = de.Details
	}
	return c.Status(statusFor(de.Kind)).JSON(body)
}

// badRequest responde un error de parseo de body o parámetros.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Success: false, Message: message})
}
