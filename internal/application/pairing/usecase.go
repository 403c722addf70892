package pairing

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/reconcile"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UseCase opera los pares producto↔opción: create inserta solo los pares que
// faltan (semántica de conjunto), update reconcilia atributos de pares
// existentes y delete quita los listados. Toda validación corre antes de
// abrir la transacción.
type UseCase struct {
	productRepo repository.ProductRepository
	pairRepo    repository.PairRepository
	tx          TxRunner
	sink        audit.Sink
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	pairRepo repository.PairRepository,
	tx TxRunner,
	sink audit.Sink,
) *UseCase {
	return &UseCase{productRepo: productRepo, pairRepo: pairRepo, tx: tx, sink: sink}
}

// Create añade pares al producto principal. Pares ya existentes se omiten
// (los duplicados del request se deduplican por semántica de conjunto).
func (uc *UseCase) Create(ctx context.Context, in dto.PairsRequest) (*dto.PairsResponse, error) {
	uc.entry(ctx, "pairs.create", in)
	pairs, err := uc.validate(in, true)
	if err != nil {
		return nil, uc.fail(ctx, "pairs.create", in, err)
	}

	current, err := uc.pairRepo.ListByMain(in.MainProductID)
	if err != nil {
		return nil, uc.fail(ctx, "pairs.create", in, err)
	}
	toAdd, _ := reconcile.Diff(optionIDs(current), optionIDsFromPayload(pairs))

	byOption := pairsByOption(pairs)
	var added int
	err = uc.tx.RunPairs(ctx, func(repo repository.PairRepository) error {
		now := time.Now().UTC()
		for _, optionID := range toAdd {
			p := byOption[optionID]
			if err := repo.Insert(&entity.ProductPair{
				MainProductID: in.MainProductID, OptionProductID: optionID,
				IsRequired: p.IsRequired, UnitsCount: p.UnitsCount,
				CreatedAt: now, UpdatedAt: now,
			}); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "pairs.create", in, err)
	}

	uc.category(ctx, "pairs.create", in, audit.OutcomeAdded, added)
	uc.success(ctx, "pairs.create", in, added, 0, 0)
	return &dto.PairsResponse{
		Success: true, Message: "pares creados", AddedCount: added,
	}, nil
}

// Read devuelve los pares vigentes del producto principal.
func (uc *UseCase) Read(ctx context.Context, in dto.PairsReadRequest) (*dto.PairsResponse, error) {
	if in.MainProductID == "" {
		return nil, domain.NewError(domain.KindValidation, "mainProductId es requerido")
	}
	if err := uc.requireProduct(in.MainProductID); err != nil {
		return nil, err
	}
	current, err := uc.pairRepo.ListByMain(in.MainProductID)
	if err != nil {
		return nil, err
	}
	payloads := make([]dto.PairPayload, 0, len(current))
	for _, p := range current {
		payloads = append(payloads, dto.PairPayload{
			OptionProductID: p.OptionProductID, IsRequired: p.IsRequired, UnitsCount: p.UnitsCount,
		})
	}
	return &dto.PairsResponse{Success: true, Message: "pares vigentes", Pairs: payloads}, nil
}

// Update reconcilia los atributos de pares existentes. Si algún
// optionProductId solicitado no tiene fila de par, la transacción completa se
// revierte y el error lista los ids faltantes: cero filas cambiadas.
func (uc *UseCase) Update(ctx context.Context, in dto.PairsRequest) (*dto.PairsResponse, error) {
	uc.entry(ctx, "pairs.update", in)
	pairs, err := uc.validate(in, true)
	if err != nil {
		return nil, uc.fail(ctx, "pairs.update", in, err)
	}

	var changed int
	err = uc.tx.RunPairs(ctx, func(repo repository.PairRepository) error {
		current, err := repo.ListByMain(in.MainProductID)
		if err != nil {
			return err
		}
		currentByOption := make(map[string]*entity.ProductPair, len(current))
		for _, p := range current {
			currentByOption[p.OptionProductID] = p
		}

		var missing []string
		for _, p := range pairs {
			if _, ok := currentByOption[p.OptionProductID]; !ok {
				missing = append(missing, p.OptionProductID)
			}
		}
		if len(missing) > 0 {
			return domain.NewErrorf(domain.KindNotFound,
				"no existe par para las opciones: %s", strings.Join(missing, ", ")).
				WithDetails(missing)
		}

		for _, p := range pairs {
			target := entity.ProductPair{
				MainProductID: in.MainProductID, OptionProductID: p.OptionProductID,
				IsRequired: p.IsRequired, UnitsCount: p.UnitsCount,
			}
			if currentByOption[p.OptionProductID].AttrsEqual(target) {
				continue
			}
			if _, err := repo.UpdateAttrs(&target); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "pairs.update", in, err)
	}

	uc.category(ctx, "pairs.update", in, audit.OutcomeChanged, changed)
	uc.success(ctx, "pairs.update", in, 0, 0, changed)
	return &dto.PairsResponse{
		Success: true, Message: "pares actualizados", ChangedCount: changed,
	}, nil
}

// Delete quita los pares listados. Opciones sin par vigente se ignoran
// (la operación es idempotente).
func (uc *UseCase) Delete(ctx context.Context, in dto.PairsRequest) (*dto.PairsResponse, error) {
	uc.entry(ctx, "pairs.delete", in)
	pairs, err := uc.validate(in, false)
	if err != nil {
		return nil, uc.fail(ctx, "pairs.delete", in, err)
	}

	current, err := uc.pairRepo.ListByMain(in.MainProductID)
	if err != nil {
		return nil, uc.fail(ctx, "pairs.delete", in, err)
	}
	toRemove := reconcile.Intersect(optionIDs(current), optionIDsFromPayload(pairs))

	err = uc.tx.RunPairs(ctx, func(repo repository.PairRepository) error {
		if len(toRemove) == 0 {
			return nil
		}
		return repo.Delete(in.MainProductID, toRemove)
	})
	if err != nil {
		return nil, uc.fail(ctx, "pairs.delete", in, err)
	}

	uc.category(ctx, "pairs.delete", in, audit.OutcomeRemoved, len(toRemove))
	uc.success(ctx, "pairs.delete", in, 0, len(toRemove), 0)
	return &dto.PairsResponse{
		Success: true, Message: "pares eliminados", RemovedCount: len(toRemove),
	}, nil
}

// validate aplica las reglas previas a la transacción: tope de 200 pares,
// sin auto-emparejamiento, correlación isRequired/unitsCount (cuando
// checkAttrs) y existencia del producto principal. Duplicados por
// optionProductId se reducen al último.
func (uc *UseCase) validate(in dto.PairsRequest, checkAttrs bool) ([]dto.PairPayload, error) {
	if in.MainProductID == "" {
		return nil, domain.NewError(domain.KindValidation, "mainProductId es requerido")
	}
	if len(in.Pairs) == 0 {
		return nil, domain.NewError(domain.KindValidation, "pairs es requerido")
	}
	if len(in.Pairs) > entity.MaxPairsPerRequest {
		return nil, domain.NewErrorf(domain.KindValidation,
			"máximo %d pares por request", entity.MaxPairsPerRequest)
	}
	for _, p := range in.Pairs {
		if p.OptionProductID == "" {
			return nil, domain.NewError(domain.KindValidation, "optionProductId es requerido en cada par")
		}
		if p.OptionProductID == in.MainProductID {
			return nil, domain.NewError(domain.KindValidation,
				"un producto no puede emparejarse consigo mismo")
		}
		if !checkAttrs {
			continue
		}
		if p.IsRequired {
			if p.UnitsCount == nil || *p.UnitsCount < entity.MinUnitsCount || *p.UnitsCount > entity.MaxUnitsCount {
				return nil, domain.NewErrorf(domain.KindValidation,
					"unitsCount debe estar en [%d, %d] cuando isRequired es true",
					entity.MinUnitsCount, entity.MaxUnitsCount)
			}
		} else if p.UnitsCount != nil {
			return nil, domain.NewError(domain.KindValidation,
				"unitsCount debe ser null cuando isRequired es false")
		}
	}
	if err := uc.requireProduct(in.MainProductID); err != nil {
		return nil, err
	}
	// Deduplicar por opción: gana la última aparición.
	byOption := pairsByOption(in.Pairs)
	deduped := make([]dto.PairPayload, 0, len(byOption))
	for _, id := range reconcile.Dedupe(optionIDsFromPayload(in.Pairs)) {
		deduped = append(deduped, byOption[id])
	}
	return deduped, nil
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

func optionIDs(pairs []*entity.ProductPair) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.OptionProductID)
	}
	return out
}

func optionIDsFromPayload(pairs []dto.PairPayload) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.OptionProductID)
	}
	return out
}

func pairsByOption(pairs []dto.PairPayload) map[string]dto.PairPayload {
	byOption := make(map[string]dto.PairPayload, len(pairs))
	for _, p := range pairs {
		byOption[p.OptionProductID] = p
	}
	return byOption
}

func (uc *UseCase) entry(ctx context.Context, action string, in dto.PairsRequest) {
	uc.sink.Publish(ctx, audit.Event{
		Action: action, Actor: in.RequestedBy, Resource: in.MainProductID,
		Outcome: audit.OutcomeEntry, Message: action,
		Details: map[string]any{"requested": len(in.Pairs)},
	})
}

func (uc *UseCase) category(ctx context.Context, action string, in dto.PairsRequest, outcome string, count int) {
	if count == 0 {
		return
	}
	uc.sink.Publish(ctx, audit.Event{
		Action: action, Actor: in.RequestedBy, Resource: in.MainProductID,
		Outcome: outcome, Message: action,
		Details: map[string]any{"count": count},
	})
}

func (uc *UseCase) success(ctx context.Context, action string, in dto.PairsRequest, added, removed, changed int) {
	uc.sink.Publish(ctx, audit.Event{
		Action: action, Actor: in.RequestedBy, Resource: in.MainProductID,
		Outcome: audit.OutcomeSuccess, Message: action,
		Details: map[string]any{"added": added, "removed": removed, "changed": changed},
	})
}

func (uc *UseCase) fail(ctx context.Context, action string, in dto.PairsRequest, err error) error {
	uc.sink.Publish(ctx, audit.Event{
		Action: action, Actor: in.RequestedBy, Resource: in.MainProductID,
		Outcome: audit.OutcomeError, Message: err.Error(),
	})
	return err
}
