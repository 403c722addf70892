package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SectionRepository = (*SectionRepo)(nil)

// SectionRepo implementación del puerto SectionRepository sobre PostgreSQL (usable con pool o tx).
type SectionRepo struct {
	q Querier
}

// NewSectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSectionRepository(q Querier) *SectionRepo {
	return &SectionRepo{q: q}
}

// List devuelve las secciones del catálogo.
func (r *SectionRepo) List() ([]entity.CatalogSection, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, slug FROM catalog_sections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()
	var list []entity.CatalogSection
	for rows.Next() {
		var s entity.CatalogSection
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// FilterExisting devuelve el subconjunto de ids que existen en catalog_sections.
func (r *SectionRepo) FilterExisting(ids []string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM catalog_sections WHERE id = ANY($1)`, stringSliceParam(ids))
	if err != nil {
		return nil, fmt.Errorf("filter sections: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan section id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// PublishedSectionIDs devuelve las secciones donde el producto está publicado.
func (r *SectionRepo) PublishedSectionIDs(productID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT section_id FROM section_publications WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// InsertPublication publica el producto en una sección.
func (r *SectionRepo) InsertPublication(pub *entity.SectionPublication) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO section_publications (product_id, section_id, published_at, published_by)
		 VALUES ($1, $2, $3, $4)`,
		pub.ProductID, pub.SectionID, pub.PublishedAt, pub.PublishedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewErrorf(domain.KindUnique, "el producto ya está publicado en la sección %s", pub.SectionID)
		}
		return fmt.Errorf("insert publication: %w", err)
	}
	return nil
}

// DeletePublications despublica el producto de las secciones indicadas.
func (r *SectionRepo) DeletePublications(productID string, sectionIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM section_publications WHERE product_id = $1 AND section_id = ANY($2)`,
		productID, stringSliceParam(sectionIDs))
	if err != nil {
		return fmt.Errorf("delete publications: %w", err)
	}
	return nil
}
