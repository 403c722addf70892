package regions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/regions"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

type fakeRegionRepo struct {
	regions map[string]entity.Region
}

func (f *fakeRegionRepo) List() ([]entity.Region, error) {
	out := make([]entity.Region, 0, len(f.regions))
	for _, r := range f.regions {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRegionRepo) FilterExisting(ids []string) ([]string, error) {
	var out []string
	for _, id := range ids {
		if _, ok := f.regions[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// fakeBindingRepo guarda los bindings en memoria indexados por región.
type fakeBindingRepo struct {
	bindings map[string]entity.ProductRegion // regionID → binding
	updated  []string
}

func (f *fakeBindingRepo) ListByProduct(productID string) ([]entity.ProductRegion, error) {
	out := make([]entity.ProductRegion, 0, len(f.bindings))
	for _, b := range f.bindings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBindingRepo) Insert(binding *entity.ProductRegion) error {
	f.bindings[binding.RegionID] = *binding
	return nil
}

func (f *fakeBindingRepo) Delete(productID string, regionIDs []string) error {
	for _, id := range regionIDs {
		delete(f.bindings, id)
	}
	return nil
}

func (f *fakeBindingRepo) UpdateCategory(binding *entity.ProductRegion) (int64, error) {
	if _, ok := f.bindings[binding.RegionID]; !ok {
		return 0, nil
	}
	f.bindings[binding.RegionID] = *binding
	f.updated = append(f.updated, binding.RegionID)
	return 1, nil
}

type fakeTx struct{ repo *fakeBindingRepo }

func (f fakeTx) RunRegions(ctx context.Context, fn func(bindings repository.ProductRegionRepository) error) error {
	return fn(f.repo)
}

func strPtr(s string) *string { return &s }

func newFixture(current ...entity.ProductRegion) (*regions.UseCase, *fakeBindingRepo) {
	bindingRepo := &fakeBindingRepo{bindings: map[string]entity.ProductRegion{}}
	for _, b := range current {
		bindingRepo.bindings[b.RegionID] = b
	}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "SKU-1"},
	}}
	regionRepo := &fakeRegionRepo{regions: map[string]entity.Region{
		"r-es": {ID: "r-es", Code: "ES", Name: "España"},
		"r-mx": {ID: "r-mx", Code: "MX", Name: "México"},
		"r-ar": {ID: "r-ar", Code: "AR", Name: "Argentina"},
	}}
	uc := regions.NewUseCase(productRepo, regionRepo, bindingRepo, fakeTx{repo: bindingRepo}, audit.NopSink{})
	return uc, bindingRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update — full replace
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_AltasBajasYCambios(t *testing.T) {
	// Estado actual: r-es (sin categoría), r-mx (cat-1).
	// Objetivo: r-es con cat-2 (cambio), r-ar (alta). r-mx desaparece (baja).
	uc, repo := newFixture(
		entity.ProductRegion{ProductID: "p1", RegionID: "r-es"},
		entity.ProductRegion{ProductID: "p1", RegionID: "r-mx", CategoryID: strPtr("cat-1")},
	)

	resp, err := uc.Update(context.Background(), "p1", dto.UpdateRegionsRequest{
		UpdatedBy: "admin",
		Regions: []dto.RegionBindingPayload{
			{RegionID: "r-es", CategoryID: strPtr("cat-2")},
			{RegionID: "r-ar"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AddedCount)
	assert.Equal(t, 1, resp.RemovedCount)
	assert.Equal(t, 1, resp.ChangedCount)

	assert.Len(t, repo.bindings, 2)
	assert.NotContains(t, repo.bindings, "r-mx")
	require.Contains(t, repo.bindings, "r-es")
	require.NotNil(t, repo.bindings["r-es"].CategoryID)
	assert.Equal(t, "cat-2", *repo.bindings["r-es"].CategoryID)
}

func TestUpdate_Idempotente(t *testing.T) {
	uc, repo := newFixture(
		entity.ProductRegion{ProductID: "p1", RegionID: "r-es", CategoryID: strPtr("cat-1")},
	)

	resp, err := uc.Update(context.Background(), "p1", dto.UpdateRegionsRequest{
		UpdatedBy: "admin",
		Regions:   []dto.RegionBindingPayload{{RegionID: "r-es", CategoryID: strPtr("cat-1")}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.AddedCount)
	assert.Equal(t, 0, resp.RemovedCount)
	assert.Equal(t, 0, resp.ChangedCount)
	assert.Empty(t, repo.updated, "misma categoría no debe tocar el binding")
}

func TestUpdate_ListaVaciaQuitaTodas(t *testing.T) {
	uc, repo := newFixture(
		entity.ProductRegion{ProductID: "p1", RegionID: "r-es"},
		entity.ProductRegion{ProductID: "p1", RegionID: "r-mx"},
	)

	resp, err := uc.Update(context.Background(), "p1", dto.UpdateRegionsRequest{
		UpdatedBy: "admin",
		Regions:   []dto.RegionBindingPayload{},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.RemovedCount)
	assert.Empty(t, repo.bindings)
	assert.Empty(t, resp.Regions)
}

func TestUpdate_DeduplicaPorRegion(t *testing.T) {
	// La misma región dos veces: gana la última aparición.
	uc, repo := newFixture()

	resp, err := uc.Update(context.Background(), "p1", dto.UpdateRegionsRequest{
		UpdatedBy: "admin",
		Regions: []dto.RegionBindingPayload{
			{RegionID: "r-es", CategoryID: strPtr("cat-1")},
			{RegionID: "r-es", CategoryID: strPtr("cat-2")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AddedCount)
	require.Contains(t, repo.bindings, "r-es")
	assert.Equal(t, "cat-2", *repo.bindings["r-es"].CategoryID)
}

func TestUpdate_RegionInexistente(t *testing.T) {
	uc, repo := newFixture(
		entity.ProductRegion{ProductID: "p1", RegionID: "r-es"},
	)

	_, err := uc.Update(context.Background(), "p1", dto.UpdateRegionsRequest{
		UpdatedBy: "admin",
		Regions: []dto.RegionBindingPayload{
			{RegionID: "r-es"},
			{RegionID: "r-nope"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, repo.bindings, "r-es", "la validación falla antes de tocar nada")
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Update(context.Background(), "p-nope", dto.UpdateRegionsRequest{
		UpdatedBy: "admin",
		Regions:   []dto.RegionBindingPayload{{RegionID: "r-es"}},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUpdate_RegionIDVacio(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Update(context.Background(), "p1", dto.UpdateRegionsRequest{
		UpdatedBy: "admin",
		Regions:   []dto.RegionBindingPayload{{RegionID: ""}},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Fetch
// ──────────────────────────────────────────────────────────────────────────────

func TestFetch_DevuelveBindingsVigentes(t *testing.T) {
	uc, _ := newFixture(
		entity.ProductRegion{ProductID: "p1", RegionID: "r-es", CategoryID: strPtr("cat-1")},
	)

	resp, err := uc.Fetch(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, resp.Regions, 1)
	assert.Equal(t, "r-es", resp.Regions[0].RegionID)
}

func TestFetch_ProductoInexistente(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Fetch(context.Background(), "p-nope")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
