package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.AccessRepository = (*AccessRepo)(nil)

// AccessRepo resuelve el chequeo de acceso para scope "own" con un único EXISTS.
type AccessRepo struct {
	q Querier
}

// NewAccessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccessRepository(q Querier) *AccessRepo {
	return &AccessRepo{q: q}
}

// CanAccessProduct informa si el usuario es owner directo del producto o
// miembro activo de un grupo vinculado como owner/specialist.
func (r *AccessRepo) CanAccessProduct(userID, productID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(
		    SELECT 1 FROM product_users
		    WHERE product_id = $1 AND user_id = $2 AND role_type = $3
		 ) OR EXISTS(
		    SELECT 1
		    FROM product_groups pg
		    JOIN group_members gm ON gm.group_id = pg.group_id AND gm.is_active
		    WHERE pg.product_id = $1 AND gm.user_id = $2 AND pg.role_type IN ($3, $4)
		 )`,
		productID, userID, entity.RelationOwner, entity.RelationSpecialist).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	return ok, nil
}
