package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/pairing"
)

// PairHandler maneja los pares producto↔opción.
type PairHandler struct {
	uc     *pairing.UseCase
	errors ErrorMapper
}

// NewPairHandler construye el handler.
func NewPairHandler(uc *pairing.UseCase, errors ErrorMapper) *PairHandler {
	return &PairHandler{uc: uc, errors: errors}
}

// Create godoc
// @Summary      Añadir pares producto↔opción (omite los existentes)
// @Tags         product-pairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PairsRequest  true  "mainProductId y pares"
// @Success      200  {object}  dto.PairsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-pairs/create [post]
func (h *PairHandler) Create(c *fiber.Ctx) error {
	return h.mutate(c, h.uc.Create)
}

// Read godoc
// @Summary      Leer los pares de un producto principal
// @Tags         product-pairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PairsReadRequest  true  "mainProductId"
// @Success      200  {object}  dto.PairsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-pairs/read [post]
func (h *PairHandler) Read(c *fiber.Ctx) error {
	var in dto.PairsReadRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Read(c.UserContext(), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar atributos de pares existentes (rollback si falta alguno)
// @Tags         product-pairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PairsRequest  true  "mainProductId y pares"
// @Success      200  {object}  dto.PairsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-pairs/update [post]
func (h *PairHandler) Update(c *fiber.Ctx) error {
	return h.mutate(c, h.uc.Update)
}

// Delete godoc
// @Summary      Quitar pares (idempotente sobre los inexistentes)
// @Tags         product-pairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PairsRequest  true  "mainProductId y optionProductIds"
// @Success      200  {object}  dto.PairsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-pairs/delete [post]
func (h *PairHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, h.uc.Delete)
}

// mutate parsea el body común y delega en la operación de pares indicada.
func (h *PairHandler) mutate(c *fiber.Ctx, op func(ctx context.Context, in dto.PairsRequest) (*dto.PairsResponse, error)) error {
	var in dto.PairsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.RequestedBy == "" {
		in.RequestedBy = GetUserID(c)
	}
	out, err := op(c.UserContext(), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}
