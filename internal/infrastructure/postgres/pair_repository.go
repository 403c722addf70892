package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.PairRepository = (*PairRepo)(nil)

// PairRepo implementación del puerto PairRepository sobre PostgreSQL (usable con pool o tx).
type PairRepo struct {
	q Querier
}

// NewPairRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPairRepository(q Querier) *PairRepo {
	return &PairRepo{q: q}
}

// ListByMain devuelve los pares del producto principal.
func (r *PairRepo) ListByMain(mainProductID string) ([]*entity.ProductPair, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT main_product_id, option_product_id, is_required, units_count, created_at, updated_at
		 FROM product_pairs WHERE main_product_id = $1 ORDER BY option_product_id`, mainProductID)
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductPair
	for rows.Next() {
		var p entity.ProductPair
		if err := rows.Scan(&p.MainProductID, &p.OptionProductID, &p.IsRequired,
			&p.UnitsCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Insert persiste un par nuevo. Una carrera por el mismo par la resuelve el
// constraint único, no la aplicación.
func (r *PairRepo) Insert(pair *entity.ProductPair) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_pairs (main_product_id, option_product_id, is_required, units_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		pair.MainProductID, pair.OptionProductID, pair.IsRequired, pair.UnitsCount,
		pair.CreatedAt, pair.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewErrorf(domain.KindUnique, "el par con la opción %s ya existe", pair.OptionProductID)
		}
		return fmt.Errorf("insert pair: %w", err)
	}
	return nil
}

// Delete elimina los pares (main, option) indicados.
func (r *PairRepo) Delete(mainProductID string, optionProductIDs []string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_pairs WHERE main_product_id = $1 AND option_product_id = ANY($2)`,
		mainProductID, stringSliceParam(optionProductIDs))
	if err != nil {
		return fmt.Errorf("delete pairs: %w", err)
	}
	return nil
}

// UpdateAttrs actualiza is_required/units_count de un par existente.
func (r *PairRepo) UpdateAttrs(pair *entity.ProductPair) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_pairs SET is_required = $3, units_count = $4, updated_at = now()
		 WHERE main_product_id = $1 AND option_product_id = $2`,
		pair.MainProductID, pair.OptionProductID, pair.IsRequired, pair.UnitsCount)
	if err != nil {
		return 0, fmt.Errorf("update pair: %w", err)
	}
	return cmd.RowsAffected(), nil
}
