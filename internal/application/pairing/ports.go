package pairing

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repo de
// pares atado a esa tx. La reconciliación nunca persiste resultados parciales:
// cualquier fallo revierte la transacción completa.
type TxRunner interface {
	RunPairs(ctx context.Context, fn func(pairs repository.PairRepository) error) error
}
