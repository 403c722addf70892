package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// SectionRepository expone las secciones del catálogo y sus publicaciones.
type SectionRepository interface {
	List() ([]entity.CatalogSection, error)
	FilterExisting(ids []string) ([]string, error)
	PublishedSectionIDs(productID string) ([]string, error)
	InsertPublication(pub *entity.SectionPublication) error
	DeletePublications(productID string, sectionIDs []string) error
}
