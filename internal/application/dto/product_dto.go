package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TranslationPayload traducción de producto en requests y respuestas.
type TranslationPayload struct {
	Lang             string `json:"lang"`
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription"`
	FullDescription  string `json:"fullDescription"`
	TechSpecs        string `json:"techSpecs"`
}

// CreateProductRequest body de creación de producto. Las traducciones deben
// incluir al menos una completa (name + fullDescription).
type CreateProductRequest struct {
	Code           string               `json:"code"`
	TranslationKey string               `json:"translationKey"`
	StatusCode     string               `json:"statusCode"`
	Price          *decimal.Decimal     `json:"price"`
	OwnerID        string               `json:"ownerId"`
	GroupIDs       []string             `json:"groupIds"`
	Translations   []TranslationPayload `json:"translations"`
	CreatedBy      string               `json:"createdBy"`
}

// UpdateProductRequest body de actualización parcial: solo los campos
// presentes (punteros no nil) se escriben; updated_by/updated_at se estampan
// siempre.
type UpdateProductRequest struct {
	Code           *string          `json:"code"`
	TranslationKey *string          `json:"translationKey"`
	StatusCode     *string          `json:"statusCode"`
	Price          *decimal.Decimal `json:"price"`
	UpdatedBy      string           `json:"updatedBy"`
}

// DeleteProductsRequest body del borrado en lote.
type DeleteProductsRequest struct {
	IDs       []string `json:"ids"`
	DeletedBy string   `json:"deletedBy"`
}

// DeleteProductsResponse resultado parcial del borrado en lote.
type DeleteProductsResponse struct {
	Success      bool        `json:"success"`
	TotalDeleted int         `json:"totalDeleted"`
	TotalErrors  int         `json:"totalErrors"`
	Errors       []ItemError `json:"errors,omitempty"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID             string               `json:"id"`
	Code           string               `json:"code"`
	TranslationKey string               `json:"translationKey"`
	StatusCode     string               `json:"statusCode"`
	IsPublished    bool                 `json:"isPublished"`
	Price          *decimal.Decimal     `json:"price,omitempty"`
	Translations   []TranslationPayload `json:"translations,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Success bool              `json:"success"`
	Items   []ProductResponse `json:"items"`
	Total   int               `json:"total"`
	Page    PageResponse      `json:"page"`
}
