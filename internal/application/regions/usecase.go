package regions

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/reconcile"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UseCase administra los bindings producto↔región con semántica full replace:
// el request trae el estado objetivo completo y la reconciliación aplica solo
// el delta (bajas, altas y cambios de categoría) en una transacción.
type UseCase struct {
	productRepo repository.ProductRepository
	regionRepo  repository.RegionRepository
	bindingRepo repository.ProductRegionRepository
	tx          TxRunner
	sink        audit.Sink
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	regionRepo repository.RegionRepository,
	bindingRepo repository.ProductRegionRepository,
	tx TxRunner,
	sink audit.Sink,
) *UseCase {
	return &UseCase{
		productRepo: productRepo, regionRepo: regionRepo, bindingRepo: bindingRepo,
		tx: tx, sink: sink,
	}
}

// ListRegions devuelve las regiones de referencia para los selectores del UI.
func (uc *UseCase) ListRegions(ctx context.Context) (*dto.RegionListResponse, error) {
	regions, err := uc.regionRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RegionItem, 0, len(regions))
	for _, r := range regions {
		items = append(items, dto.RegionItem{ID: r.ID, Code: r.Code, Name: r.Name})
	}
	return &dto.RegionListResponse{Success: true, Items: items}, nil
}

// Fetch devuelve los bindings vigentes del producto.
func (uc *UseCase) Fetch(ctx context.Context, productID string) (*dto.RegionsResponse, error) {
	if err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	current, err := uc.bindingRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &dto.RegionsResponse{Success: true, Regions: bindingsToPayload(current)}, nil
}

// Update reemplaza el estado completo de regiones del producto: lista vacía
// significa quitar todas. Bajas antes que altas, todo en una transacción;
// ante fallo no persiste nada.
func (uc *UseCase) Update(ctx context.Context, productID string, in dto.UpdateRegionsRequest) (*dto.RegionsResponse, error) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update_regions", Actor: in.UpdatedBy, Resource: productID,
		Outcome: audit.OutcomeEntry, Message: "full replace de regiones",
		Details: map[string]any{"target": len(in.Regions)},
	})

	if err := uc.requireProduct(productID); err != nil {
		return nil, uc.fail(ctx, in.UpdatedBy, productID, err)
	}
	target, err := uc.validateTarget(in.Regions)
	if err != nil {
		return nil, uc.fail(ctx, in.UpdatedBy, productID, err)
	}

	var added, removed, changed int
	err = uc.tx.RunRegions(ctx, func(bindings repository.ProductRegionRepository) error {
		current, err := bindings.ListByProduct(productID)
		if err != nil {
			return err
		}
		currentByRegion := make(map[string]entity.ProductRegion, len(current))
		for _, b := range current {
			currentByRegion[b.RegionID] = b
		}

		toAdd, toRemove := reconcile.Diff(regionIDsOf(current), regionIDsOfPayload(target))

		if len(toRemove) > 0 {
			if err := bindings.Delete(productID, toRemove); err != nil {
				return err
			}
			removed = len(toRemove)
		}
		for _, regionID := range toAdd {
			p := target[regionID]
			if err := bindings.Insert(&entity.ProductRegion{
				ProductID: productID, RegionID: regionID, CategoryID: p.CategoryID,
			}); err != nil {
				return err
			}
			added++
		}
		for regionID, p := range target {
			cur, ok := currentByRegion[regionID]
			if !ok {
				continue
			}
			next := entity.ProductRegion{ProductID: productID, RegionID: regionID, CategoryID: p.CategoryID}
			if cur.AttrsEqual(next) {
				continue
			}
			if _, err := bindings.UpdateCategory(&next); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, in.UpdatedBy, productID, err)
	}

	for outcome, count := range map[string]int{
		audit.OutcomeAdded: added, audit.OutcomeRemoved: removed, audit.OutcomeChanged: changed,
	} {
		if count == 0 {
			continue
		}
		uc.sink.Publish(ctx, audit.Event{
			Action: "product.update_regions", Actor: in.UpdatedBy, Resource: productID,
			Outcome: outcome, Message: "binding de regiones",
			Details: map[string]any{"count": count},
		})
	}
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update_regions", Actor: in.UpdatedBy, Resource: productID,
		Outcome: audit.OutcomeSuccess, Message: "full replace de regiones",
		Details: map[string]any{"added": added, "removed": removed, "changed": changed},
	})

	final, err := uc.bindingRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &dto.RegionsResponse{
		Success: true, Regions: bindingsToPayload(final),
		AddedCount: added, RemovedCount: removed, ChangedCount: changed,
	}, nil
}

// validateTarget deduplica por región (gana la última aparición) y verifica
// que todas las regiones existan antes de abrir la transacción.
func (uc *UseCase) validateTarget(payload []dto.RegionBindingPayload) (map[string]dto.RegionBindingPayload, error) {
	target := make(map[string]dto.RegionBindingPayload, len(payload))
	ids := make([]string, 0, len(payload))
	for _, p := range payload {
		if p.RegionID == "" {
			return nil, domain.NewError(domain.KindValidation, "region_id es requerido en cada binding")
		}
		if _, ok := target[p.RegionID]; !ok {
			ids = append(ids, p.RegionID)
		}
		target[p.RegionID] = p
	}
	if len(ids) == 0 {
		return target, nil
	}
	existing, err := uc.regionRepo.FilterExisting(ids)
	if err != nil {
		return nil, err
	}
	if len(existing) != len(ids) {
		_, missing := reconcile.Diff(ids, existing)
		return nil, domain.NewError(domain.KindValidation, "regiones inexistentes").WithDetails(missing)
	}
	return target, nil
}

func (uc *UseCase) requireProduct(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewErrorf(domain.KindNotFound, "producto %s no encontrado", id)
	}
	return nil
}

func regionIDsOf(bindings []entity.ProductRegion) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.RegionID)
	}
	return out
}

func regionIDsOfPayload(target map[string]dto.RegionBindingPayload) []string {
	out := make([]string, 0, len(target))
	for id := range target {
		out = append(out, id)
	}
	return out
}

func bindingsToPayload(bindings []entity.ProductRegion) []dto.RegionBindingPayload {
	out := make([]dto.RegionBindingPayload, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, dto.RegionBindingPayload{RegionID: b.RegionID, CategoryID: b.CategoryID})
	}
	return out
}

func (uc *UseCase) fail(ctx context.Context, actor, resource string, err error) error {
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update_regions", Actor: actor, Resource: resource,
		Outcome: audit.OutcomeError, Message: err.Error(),
	})
	return err
}
