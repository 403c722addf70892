package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/backoffice-api/internal/application/membership"
	"github.com/jhoicas/backoffice-api/internal/application/pairing"
	"github.com/jhoicas/backoffice-api/internal/application/products"
	"github.com/jhoicas/backoffice-api/internal/application/publishing"
	"github.com/jhoicas/backoffice-api/internal/application/regions"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de cada caso de uso.
var (
	_ membership.TxRunner = (*TxRunner)(nil)
	_ products.TxRunner   = (*TxRunner)(nil)
	_ pairing.TxRunner    = (*TxRunner)(nil)
	_ regions.TxRunner    = (*TxRunner)(nil)
	_ publishing.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL: BEGIN,
// fn con repos atados a la tx, COMMIT; ROLLBACK vía defer ante cualquier error.
// No hay transacciones anidadas ni locking explícito: las carreras las
// resuelven MVCC y los constraints únicos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMembership abre una transacción con los repos de membresías y usuarios
// atados a la tx: la elegibilidad por account_status se resuelve dentro de la
// misma transacción que hace los inserts.
func (r *TxRunner) RunMembership(ctx context.Context, fn func(members repository.GroupMemberRepository, users repository.UserRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewGroupMemberRepository(tx), NewUserRepository(tx))
	})
}

// RunProducts abre una transacción con el repo de productos atado a la tx
// (create con traducciones y relaciones, swap de owner, delete en lote).
func (r *TxRunner) RunProducts(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx))
	})
}

// RunPairs abre una transacción para la reconciliación de pares.
func (r *TxRunner) RunPairs(ctx context.Context, fn func(pairs repository.PairRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPairRepository(tx))
	})
}

// RunRegions abre una transacción para el full replace de regiones.
func (r *TxRunner) RunRegions(ctx context.Context, fn func(bindings repository.ProductRegionRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRegionRepository(tx))
	})
}

// RunPublications abre una transacción para publicar en secciones; incluye el
// repo de productos para recalcular is_published antes del commit.
func (r *TxRunner) RunPublications(ctx context.Context, fn func(sections repository.SectionRepository, products repository.ProductRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSectionRepository(tx), NewProductRepository(tx))
	})
}
