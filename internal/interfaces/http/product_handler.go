package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/products"
	"github.com/jhoicas/backoffice-api/internal/application/regions"
)

// ProductHandler maneja productos: CRUD, cambio de owner, regiones y ficha PDF.
type ProductHandler struct {
	productUC *products.UseCase
	regionsUC *regions.UseCase
	sheetUC   *products.SheetUseCase
	errors    ErrorMapper
}

// NewProductHandler construye el handler.
func NewProductHandler(productUC *products.UseCase, regionsUC *regions.UseCase, sheetUC *products.SheetUseCase, errors ErrorMapper) *ProductHandler {
	return &ProductHandler{productUC: productUC, regionsUC: regionsUC, sheetUC: sheetUC, errors: errors}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.CreatedBy == "" {
		in.CreatedBy = GetUserID(c)
	}
	out, err := h.productUC.Create(c.UserContext(), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos (filtrado por scope)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (1..100, default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.productUC.List(c.UserContext(), GetScope(c), GetUserID(c), page)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID con traducciones
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.productUC.GetByID(c.UserContext(), c.Params("id"), GetScope(c), GetUserID(c))
	if err != nil {
		return h.errors.Write(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Success: false, Message: "Product not found or already deleted"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a escribir"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.UpdatedBy == "" {
		in.UpdatedBy = GetUserID(c)
	}
	out, err := h.productUC.Update(c.UserContext(), id, GetScope(c), GetUserID(c), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar productos en lote
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteProductsRequest  true  "ids"
// @Success      200  {object}  dto.DeleteProductsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.DeletedBy == "" {
		in.DeletedBy = GetUserID(c)
	}
	out, err := h.productUC.Delete(c.UserContext(), GetScope(c), GetUserID(c), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// ChangeOwner godoc
// @Summary      Cambiar el owner de un producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ChangeOwnerRequest  true  "newOwnerId o newOwnerUsername"
// @Success      200  {object}  dto.ChangeOwnerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/change-owner [post]
func (h *ProductHandler) ChangeOwner(c *fiber.Ctx) error {
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
	out, err := h.productUC.ChangeOwner(c.UserContext(), id, in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// GetRegions godoc
// @Summary      Obtener los bindings producto↔región
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.RegionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/regions [get]
func (h *ProductHandler) GetRegions(c *fiber.Ctx) error {
	out, err := h.regionsUC.Fetch(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateRegions godoc
// @Summary      Reemplazar los bindings producto↔región (full replace)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateRegionsRequest  true  "estado objetivo; lista vacía = quitar todas"
// @Success      200  {object}  dto.RegionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/regions [put]
func (h *ProductHandler) UpdateRegions(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateRegionsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.UpdatedBy == "" {
		in.UpdatedBy = GetUserID(c)
	}
	out, err := h.regionsUC.Update(c.UserContext(), id, in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// Sheet godoc
// @Summary      Ficha de producto en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sheet.pdf [get]
func (h *ProductHandler) Sheet(c *fiber.Ctx) error {
	pdfBytes, err := h.sheetUC.Generate(c.UserContext(), c.Params("id"), GetScope(c), GetUserID(c))
	if err != nil {
		return h.errors.Write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}
