package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// RegionRepository expone las regiones de referencia.
type RegionRepository interface {
	List() ([]entity.Region, error)
	FilterExisting(ids []string) ([]string, error)
}

// ProductRegionRepository opera los bindings producto↔región (full replace).
type ProductRegionRepository interface {
	ListByProduct(productID string) ([]entity.ProductRegion, error)
	Insert(binding *entity.ProductRegion) error
	Delete(productID string, regionIDs []string) error
	// UpdateCategory cambia la categoría imponible de un binding existente.
	UpdateCategory(binding *entity.ProductRegion) (int64, error)
}
