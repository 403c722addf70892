package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// PairRepository opera los pares producto↔opción. Se usa tanto con el pool
// como atado a una transacción durante la reconciliación.
type PairRepository interface {
	ListByMain(mainProductID string) ([]*entity.ProductPair, error)
	Insert(pair *entity.ProductPair) error
	Delete(mainProductID string, optionProductIDs []string) error
	// UpdateAttrs actualiza is_required/units_count de un par existente.
	// Devuelve las filas afectadas.
	UpdateAttrs(pair *entity.ProductPair) (int64, error)
}
