package products

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repo de
// productos atado a esa tx. Garantiza atomicidad para create (producto +
// traducciones + relaciones), el swap de owner y el borrado en lote.
type TxRunner interface {
	RunProducts(ctx context.Context, fn func(products repository.ProductRepository) error) error
}
