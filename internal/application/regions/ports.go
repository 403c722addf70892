package regions

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repo de
// bindings producto↔región atado a esa tx.
type TxRunner interface {
	RunRegions(ctx context.Context, fn func(bindings repository.ProductRegionRepository) error) error
}
