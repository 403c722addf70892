package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var (
	_ repository.RegionRepository        = (*RegionRepo)(nil)
	_ repository.ProductRegionRepository = (*ProductRegionRepo)(nil)
)

// RegionRepo implementación del puerto RegionRepository sobre PostgreSQL.
type RegionRepo struct {
	q Querier
}

// NewRegionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRegionRepository(q Querier) *RegionRepo {
	return &RegionRepo{q: q}
}

// List devuelve todas las regiones de referencia.
func (r *RegionRepo) List() ([]entity.Region, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, code, name FROM regions ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()
	var list []entity.Region
	for rows.Next() {
		var reg entity.Region
		if err := rows.Scan(&reg.ID, &reg.Code, &reg.Name); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// FilterExisting devuelve el subconjunto de ids que existen en regions.
func (r *RegionRepo) FilterExisting(ids []string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM regions WHERE id = ANY($1)`, stringSliceParam(ids))
	if err != nil {
		return nil, fmt.Errorf("filter regions: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan region id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ProductRegionRepo implementación del puerto ProductRegionRepository (usable con pool o tx).
type ProductRegionRepo struct {
	q Querier
}

// NewProductRegionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRegionRepository(q Querier) *ProductRegionRepo {
	return &ProductRegionRepo{q: q}
}

// ListByProduct devuelve los bindings región del producto.
func (r *ProductRegionRepo) ListByProduct(productID string) ([]entity.ProductRegion, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, region_id, category_id FROM product_regions
		 WHERE product_id = $1 ORDER BY region_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product regions: %w", err)
	}
	defer rows.Close()
	var list []entity.ProductRegion
	for rows.Next() {
		var pr entity.ProductRegion
		if err := rows.Scan(&pr.ProductID, &pr.RegionID, &pr.CategoryID); err != nil {
			return nil, fmt.Errorf("scan product region: %w", err)
		}
		list = append(list, pr)
	}
	return list, rows.Err()
}

// Insert persiste un binding nuevo.
func (r *ProductRegionRepo) Insert(binding *entity.ProductRegion) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_regions (product_id, region_id, category_id) VALUES ($1, $2, $3)`,
		binding.ProductID, binding.RegionID, binding.CategoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewErrorf(domain.KindUnique, "la región %s ya está vinculada", binding.RegionID)
		}
		return fmt.Errorf("insert product region: %w", err)
	}
	return nil
}

// Delete elimina los bindings (product, region) indicados.
func (r *ProductRegionRepo) Delete(productID string, regionIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_regions WHERE product_id = $1 AND region_id = ANY($2)`,
		productID, stringSliceParam(regionIDs))
	if err != nil {
		return fmt.Errorf("delete product regions: %w", err)
	}
	return nil
}

// UpdateCategory cambia la categoría imponible de un binding existente.
func (r *ProductRegionRepo) UpdateCategory(binding *entity.ProductRegion) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_regions SET category_id = $3 WHERE product_id = $1 AND region_id = $2`,
		binding.ProductID, binding.RegionID, binding.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("update product region: %w", err)
	}
	return cmd.RowsAffected(), nil
}
