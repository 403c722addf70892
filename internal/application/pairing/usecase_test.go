package pairing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/pairing"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo embebe la interfaz: solo GetByID se usa en estos flujos.
type fakeProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

// fakePairRepo mantiene los pares en memoria, indexados por opción.
type fakePairRepo struct {
	repository.PairRepository
	pairs    map[string]*entity.ProductPair
	inserted []string
	removed  []string
	updated  []string
}

func (f *fakePairRepo) ListByMain(string) ([]*entity.ProductPair, error) {
	out := make([]*entity.ProductPair, 0, len(f.pairs))
	for _, p := range f.pairs {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePairRepo) Insert(pair *entity.ProductPair) error {
	f.pairs[pair.OptionProductID] = pair
	f.inserted = append(f.inserted, pair.OptionProductID)
	return nil
}

func (f *fakePairRepo) Delete(_ string, optionIDs []string) error {
	for _, id := range optionIDs {
		delete(f.pairs, id)
		f.removed = append(f.removed, id)
	}
	return nil
}

func (f *fakePairRepo) UpdateAttrs(pair *entity.ProductPair) (int64, error) {
	f.pairs[pair.OptionProductID] = pair
	f.updated = append(f.updated, pair.OptionProductID)
	return 1, nil
}

// fakeTx ejecuta el callback directamente con el repo en memoria.
type fakeTx struct {
	repo repository.PairRepository
}

func (f fakeTx) RunPairs(_ context.Context, fn func(repository.PairRepository) error) error {
	return fn(f.repo)
}

func intPtr(n int) *int { return &n }

func newFixture(existing ...*entity.ProductPair) (*pairing.UseCase, *fakePairRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"main": {ID: "main", Code: "MAIN"},
	}}
	pairs := &fakePairRepo{pairs: make(map[string]*entity.ProductPair)}
	for _, p := range existing {
		pairs.pairs[p.OptionProductID] = p
	}
	uc := pairing.NewUseCase(products, pairs, fakeTx{repo: pairs}, audit.NopSink{})
	return uc, pairs
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — semántica de conjunto
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OmiteParesExistentes(t *testing.T) {
	uc, repo := newFixture(&entity.ProductPair{
		MainProductID: "main", OptionProductID: "opt-1", IsRequired: false,
	})

	out, err := uc.Create(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs: []dto.PairPayload{
			{OptionProductID: "opt-1", IsRequired: false},
			{OptionProductID: "opt-2", IsRequired: true, UnitsCount: intPtr(3)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.AddedCount, "solo opt-2 es nuevo")
	assert.Equal(t, []string{"opt-2"}, repo.inserted)
}

func TestCreate_DeduplicaPorOpcion(t *testing.T) {
	uc, repo := newFixture()

	out, err := uc.Create(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs: []dto.PairPayload{
			{OptionProductID: "opt-1", IsRequired: true, UnitsCount: intPtr(2)},
			{OptionProductID: "opt-1", IsRequired: true, UnitsCount: intPtr(5)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.AddedCount)
	// Gana la última aparición del request.
	assert.Equal(t, 5, *repo.pairs["opt-1"].UnitsCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación previa a la transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RechazaAutoEmparejamiento(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Create(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs:         []dto.PairPayload{{OptionProductID: "main"}},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreate_RechazaMasDe200Pares(t *testing.T) {
	uc, _ := newFixture()

	pairs := make([]dto.PairPayload, entity.MaxPairsPerRequest+1)
	for i := range pairs {
		pairs[i] = dto.PairPayload{OptionProductID: "opt"}
	}
	_, err := uc.Create(context.Background(), dto.PairsRequest{MainProductID: "main", Pairs: pairs})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreate_CorrelacionRequiredUnits(t *testing.T) {
	uc, _ := newFixture()

	// isRequired true exige unitsCount en [1, 100].
	_, err := uc.Create(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs:         []dto.PairPayload{{OptionProductID: "opt-1", IsRequired: true}},
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.Create(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs:         []dto.PairPayload{{OptionProductID: "opt-1", IsRequired: true, UnitsCount: intPtr(101)}},
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	// isRequired false exige unitsCount null.
	_, err = uc.Create(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs:         []dto.PairPayload{{OptionProductID: "opt-1", IsRequired: false, UnitsCount: intPtr(1)}},
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreate_ProductoPrincipalInexistente(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Create(context.Background(), dto.PairsRequest{
		MainProductID: "no-existe",
		Pairs:         []dto.PairPayload{{OptionProductID: "opt-1"}},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — rollback total si falta algún par
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ParFaltanteRevierteTodo(t *testing.T) {
	uc, repo := newFixture(&entity.ProductPair{
		MainProductID: "main", OptionProductID: "opt-1", IsRequired: false,
	})

	_, err := uc.Update(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs: []dto.PairPayload{
			{OptionProductID: "opt-1", IsRequired: true, UnitsCount: intPtr(2)},
			{OptionProductID: "opt-missing", IsRequired: false},
		},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), "opt-missing", "el error lista los ids faltantes")
	assert.Empty(t, repo.updated, "ningún par debe haberse actualizado")
}

func TestUpdate_SoloCambiaAtributosDistintos(t *testing.T) {
	uc, repo := newFixture(
		&entity.ProductPair{MainProductID: "main", OptionProductID: "opt-1", IsRequired: true, UnitsCount: intPtr(2)},
		&entity.ProductPair{MainProductID: "main", OptionProductID: "opt-2", IsRequired: false},
	)

	out, err := uc.Update(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs: []dto.PairPayload{
			{OptionProductID: "opt-1", IsRequired: true, UnitsCount: intPtr(2)}, // sin cambio
			{OptionProductID: "opt-2", IsRequired: true, UnitsCount: intPtr(7)}, // cambia
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.ChangedCount)
	assert.Equal(t, []string{"opt-2"}, repo.updated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — idempotente
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_IgnoraOpcionesSinPar(t *testing.T) {
	uc, repo := newFixture(&entity.ProductPair{
		MainProductID: "main", OptionProductID: "opt-1", IsRequired: false,
	})

	out, err := uc.Delete(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs: []dto.PairPayload{
			{OptionProductID: "opt-1"},
			{OptionProductID: "opt-nunca-existio"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.RemovedCount)
	assert.Equal(t, []string{"opt-1"}, repo.removed)

	// Repetir el mismo delete no quita nada: idempotencia.
	out, err = uc.Delete(context.Background(), dto.PairsRequest{
		MainProductID: "main",
		Pairs:         []dto.PairPayload{{OptionProductID: "opt-1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.RemovedCount)
}
