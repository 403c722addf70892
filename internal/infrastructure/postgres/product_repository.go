package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, translation_key, status_code, is_published, price, created_at, created_by, updated_at, updated_by`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste la fila base del producto. La etiqueta de status_code la
// valida el tipo enum de la base, no la aplicación.
func (r *ProductRepo) Create(product *entity.Product) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO products (id, code, translation_key, status_code, is_published, price, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		product.ID, product.Code, product.TranslationKey, product.StatusCode, product.IsPublished,
		product.Price, product.CreatedAt, product.CreatedBy, product.UpdatedAt, product.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewErrorf(domain.KindUnique, "code o translation_key ya registrados: %s", product.Code)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.Code, &p.TranslationKey, &p.StatusCode, &p.IsPublished, &p.Price,
		&p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos con paginación y devuelve el total.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, int, error) {
	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.TranslationKey, &p.StatusCode, &p.IsPublished,
			&p.Price, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// FilterExisting devuelve el subconjunto de ids que existen en products.
func (r *ProductRepo) FilterExisting(ids []string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM products WHERE id = ANY($1)`, stringSliceParam(ids))
	if err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// CodeOrKeyTaken verifica unicidad case-insensitive de code y translation_key.
func (r *ProductRepo) CodeOrKeyTaken(code, translationKey string) (bool, bool, error) {
	var codeTaken, keyTaken bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE lower(code) = lower($1)),
		        EXISTS(SELECT 1 FROM products WHERE lower(translation_key) = lower($2))`,
		code, translationKey).Scan(&codeTaken, &keyTaken)
	if err != nil {
		return false, false, fmt.Errorf("check uniqueness: %w", err)
	}
	return codeTaken, keyTaken, nil
}

// UpdateColumns aplica un update parcial con el builder declarativo y estampa
// siempre updated_by/updated_at en la misma sentencia.
func (r *ProductRepo) UpdateColumns(id, updatedBy string, cols []repository.ColumnValue) (int64, error) {
	all := make([]repository.ColumnValue, 0, len(cols)+2)
	all = append(all, cols...)
	all = append(all,
		repository.ColumnValue{Column: "updated_by", Value: updatedBy},
		repository.ColumnValue{Column: "updated_at", Value: nowUTC()},
	)
	sql, args := buildUpdate("products", all, "id", id)
	cmd, err := r.q.Exec(context.Background(), sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.NewError(domain.KindUnique, "code o translation_key ya registrados")
		}
		return 0, fmt.Errorf("update product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete borra el producto; traducciones y relaciones caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(id string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Translations devuelve las traducciones del producto.
func (r *ProductRepo) Translations(productID string) ([]entity.ProductTranslation, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, lang, name, short_description, full_description, tech_specs
		 FROM product_translations WHERE product_id = $1 ORDER BY lang`, productID)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()
	var list []entity.ProductTranslation
	for rows.Next() {
		var t entity.ProductTranslation
		if err := rows.Scan(&t.ProductID, &t.Lang, &t.Name, &t.ShortDescription,
			&t.FullDescription, &t.TechSpecs); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// InsertTranslation persiste una traducción.
func (r *ProductRepo) InsertTranslation(tr *entity.ProductTranslation) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_translations (product_id, lang, name, short_description, full_description, tech_specs)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		tr.ProductID, tr.Lang, tr.Name, tr.ShortDescription, tr.FullDescription, tr.TechSpecs)
	if err != nil {
		return fmt.Errorf("insert translation: %w", err)
	}
	return nil
}

// OwnerID devuelve el usuario con role_type='owner' ("" si no hay).
func (r *ProductRepo) OwnerID(productID string) (string, error) {
	var ownerID string
	err := r.q.QueryRow(context.Background(),
		`SELECT user_id FROM product_users WHERE product_id = $1 AND role_type = $2`,
		productID, entity.RelationOwner).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get product owner: %w", err)
	}
	return ownerID, nil
}

// InsertUserRelation vincula un usuario al producto con el role_type dado.
func (r *ProductRepo) InsertUserRelation(productID, userID, roleType string) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_users (product_id, user_id, role_type) VALUES ($1, $2, $3)`,
		productID, userID, roleType)
	if err != nil {
		return fmt.Errorf("insert product user: %w", err)
	}
	return nil
}

// InsertGroupRelation vincula un grupo al producto con el role_type dado.
func (r *ProductRepo) InsertGroupRelation(productID, groupID, roleType string) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_groups (product_id, group_id, role_type) VALUES ($1, $2, $3)`,
		productID, groupID, roleType)
	if err != nil {
		return fmt.Errorf("insert product group: %w", err)
	}
	return nil
}

// UpdateOwnerRow cambia el user_id de la fila owner.
func (r *ProductRepo) UpdateOwnerRow(productID, newOwnerID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_users SET user_id = $2 WHERE product_id = $1 AND role_type = $3`,
		productID, newOwnerID, entity.RelationOwner)
	if err != nil {
		return 0, fmt.Errorf("update product owner: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// StampUpdated actualiza updated_by/updated_at del producto.
func (r *ProductRepo) StampUpdated(productID, updatedBy string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET updated_by = $2, updated_at = now() WHERE id = $1`,
		productID, updatedBy)
	if err != nil {
		return fmt.Errorf("stamp product: %w", err)
	}
	return nil
}

// SetPublished fija la bandera derivada is_published.
func (r *ProductRepo) SetPublished(productID string, published bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_published = $2 WHERE id = $1`, productID, published)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	return nil
}
