package entity

import "time"

// CatalogSection es una sección del catálogo público.
type CatalogSection struct {
	ID   string
	Name string
	Slug string
}

// SectionPublication publica un producto en una sección del catálogo.
// Única por (ProductID, SectionID).
type SectionPublication struct {
	ProductID   string
	SectionID   string
	PublishedAt time.Time
	PublishedBy string
}
