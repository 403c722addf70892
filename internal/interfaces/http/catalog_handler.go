package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/publishing"
	"github.com/jhoicas/backoffice-api/internal/application/regions"
)

// CatalogHandler maneja la publicación en secciones y los listados de
// referencia (regiones y secciones) que consumen los selectores del UI.
type CatalogHandler struct {
	publishingUC *publishing.UseCase
	regionsUC    *regions.UseCase
	errors       ErrorMapper
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(publishingUC *publishing.UseCase, regionsUC *regions.UseCase, errors ErrorMapper) *CatalogHandler {
	return &CatalogHandler{publishingUC: publishingUC, regionsUC: regionsUC, errors: errors}
}

// UpdateSectionsPublish godoc
// @Summary      Reemplazar las secciones donde un producto está publicado
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSectionsPublishRequest  true  "estado objetivo; lista vacía = despublicar"
// @Success      200  {object}  dto.PublishResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/update-sections-publish [put]
func (h *CatalogHandler) UpdateSectionsPublish(c *fiber.Ctx) error {
	var in dto.UpdateSectionsPublishRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.UpdatedBy == "" {
		in.UpdatedBy = GetUserID(c)
	}
	out, err := h.publishingUC.UpdatePublications(c.UserContext(), in)
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// ListSections godoc
// @Summary      Listar secciones del catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SectionListResponse
// @Router       /api/catalog/sections [get]
func (h *CatalogHandler) ListSections(c *fiber.Ctx) error {
	out, err := h.publishingUC.ListSections(c.UserContext())
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}

// ListRegions godoc
// @Summary      Listar regiones de venta
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RegionListResponse
// @Router       /api/regions [get]
func (h *CatalogHandler) ListRegions(c *fiber.Ctx) error {
	out, err := h.regionsUC.ListRegions(c.UserContext())
	if err != nil {
		return h.errors.Write(c, err)
	}
	return c.JSON(out)
}
