package publishing

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/reconcile"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UseCase administra la publicación de productos en secciones del catálogo.
// El request trae el conjunto objetivo completo de secciones; lista vacía
// significa despublicar de todas. La bandera is_published del producto se
// recalcula dentro de la misma transacción que el delta.
type UseCase struct {
	productRepo repository.ProductRepository
	sectionRepo repository.SectionRepository
	tx          TxRunner
	sink        audit.Sink
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	sectionRepo repository.SectionRepository,
	tx TxRunner,
	sink audit.Sink,
) *UseCase {
	return &UseCase{productRepo: productRepo, sectionRepo: sectionRepo, tx: tx, sink: sink}
}

// ListSections devuelve las secciones disponibles del catálogo.
func (uc *UseCase) ListSections(ctx context.Context) (*dto.SectionListResponse, error) {
	sections, err := uc.sectionRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SectionItem, 0, len(sections))
	for _, s := range sections {
		items = append(items, dto.SectionItem{ID: s.ID, Name: s.Name, Slug: s.Slug})
	}
	return &dto.SectionListResponse{Success: true, Items: items}, nil
}

// UpdatePublications reemplaza el conjunto de secciones donde el producto
// está publicado. Es idempotente: repetir el mismo request no produce deltas.
func (uc *UseCase) UpdatePublications(ctx context.Context, in dto.UpdateSectionsPublishRequest) (*dto.PublishResponse, error) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update_sections_publish", Actor: in.UpdatedBy, Resource: in.ProductID,
		Outcome: audit.OutcomeEntry, Message: "full replace de publicaciones",
		Details: map[string]any{"target": len(in.SectionIDs)},
	})

	if in.ProductID == "" {
		return nil, uc.fail(ctx, in, domain.NewError(domain.KindValidation, "productId es requerido"))
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, uc.fail(ctx, in, err)
	}
	if product == nil {
		return nil, uc.fail(ctx, in, domain.NewErrorf(domain.KindNotFound, "producto %s no encontrado", in.ProductID))
	}

	target := reconcile.Dedupe(in.SectionIDs)
	if len(target) > 0 {
		existing, err := uc.sectionRepo.FilterExisting(target)
		if err != nil {
			return nil, uc.fail(ctx, in, err)
		}
		if len(existing) != len(target) {
			_, missing := reconcile.Diff(target, existing)
			return nil, uc.fail(ctx, in,
				domain.NewError(domain.KindValidation, "secciones inexistentes").WithDetails(missing))
		}
	}

	var added, removed int
	published := len(target) > 0
	err = uc.tx.RunPublications(ctx, func(sections repository.SectionRepository, products repository.ProductRepository) error {
		current, err := sections.PublishedSectionIDs(in.ProductID)
		if err != nil {
			return err
		}
		toAdd, toRemove := reconcile.Diff(current, target)

		if len(toRemove) > 0 {
			if err := sections.DeletePublications(in.ProductID, toRemove); err != nil {
				return err
			}
			removed = len(toRemove)
		}
		now := time.Now().UTC()
		for _, sectionID := range toAdd {
			if err := sections.InsertPublication(&entity.SectionPublication{
				ProductID: in.ProductID, SectionID: sectionID,
				PublishedAt: now, PublishedBy: in.UpdatedBy,
			}); err != nil {
				return err
			}
			added++
		}
		// is_published es derivada: true si y solo si queda al menos una sección.
		if product.IsPublished != published {
			if err := products.SetPublished(in.ProductID, published); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, in, err)
	}

	if added > 0 {
		uc.publishDelta(ctx, in, audit.OutcomeAdded, added)
	}
	if removed > 0 {
		uc.publishDelta(ctx, in, audit.OutcomeRemoved, removed)
	}
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update_sections_publish", Actor: in.UpdatedBy, Resource: in.ProductID,
		Outcome: audit.OutcomeSuccess, Message: "full replace de publicaciones",
		Details: map[string]any{"added": added, "removed": removed, "isPublished": published},
	})

	return &dto.PublishResponse{
		Success: true, Message: "publicaciones actualizadas",
		AddedCount: added, RemovedCount: removed, IsPublished: published,
	}, nil
}

func (uc *UseCase) publishDelta(ctx context.Context, in dto.UpdateSectionsPublishRequest, outcome string, count int) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update_sections_publish", Actor: in.UpdatedBy, Resource: in.ProductID,
		Outcome: outcome, Message: "publicación en secciones",
		Details: map[string]any{"count": count},
	})
}

func (uc *UseCase) fail(ctx context.Context, in dto.UpdateSectionsPublishRequest, err error) error {
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update_sections_publish", Actor: in.UpdatedBy, Resource: in.ProductID,
		Outcome: audit.OutcomeError, Message: err.Error(),
	})
	return err
}
