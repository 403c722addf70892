package publishing

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repos
// de secciones y productos atados a esa tx, para que el recálculo de
// is_published viaje en la misma transacción que el delta de publicaciones.
type TxRunner interface {
	RunPublications(ctx context.Context, fn func(sections repository.SectionRepository, products repository.ProductRepository) error) error
}
