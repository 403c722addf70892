package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/backoffice-api/internal/application/access"
	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/reconcile"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Mensajes por item del contrato de la API (lotes con éxito parcial).
const msgProductNotFound = "Product not found or already deleted"

// UseCase implementa el CRUD de productos y el cambio de owner.
type UseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	checker     *access.Checker
	tx          TxRunner
	sink        audit.Sink
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	checker *access.Checker,
	tx TxRunner,
	sink audit.Sink,
) *UseCase {
	return &UseCase{
		productRepo: productRepo, userRepo: userRepo, groupRepo: groupRepo,
		checker: checker, tx: tx, sink: sink,
	}
}

// Create valida campos requeridos, unicidad case-insensitive de code y
// translation_key y al menos una traducción completa; inserta la fila base,
// las traducciones y las relaciones owner/grupos en una sola transacción.
// Ante fallo revierte todo y re-lanza el mensaje original.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.create", Actor: in.CreatedBy, Resource: in.Code,
		Outcome: audit.OutcomeEntry, Message: "crear producto",
	})

	if err := uc.validateCreate(in); err != nil {
		return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code, err)
	}

	codeTaken, keyTaken, err := uc.productRepo.CodeOrKeyTaken(in.Code, in.TranslationKey)
	if err != nil {
		return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code, err)
	}
	if codeTaken {
		return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code,
			domain.NewErrorf(domain.KindUnique, "el code '%s' ya está registrado", in.Code))
	}
	if keyTaken {
		return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code,
			domain.NewErrorf(domain.KindUnique, "la translation_key '%s' ya está registrada", in.TranslationKey))
	}

	owner, err := uc.userRepo.GetByID(in.OwnerID)
	if err != nil {
		return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code, err)
	}
	if owner == nil {
		return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code,
			domain.NewErrorf(domain.KindNotFound, "owner %s no encontrado", in.OwnerID))
	}

	groupIDs := reconcile.Dedupe(in.GroupIDs)
	if len(groupIDs) > 0 {
		existing, err := uc.groupRepo.FilterExisting(groupIDs)
		if err != nil {
			return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code, err)
		}
		if len(existing) != len(groupIDs) {
			_, missing := reconcile.Diff(groupIDs, existing)
			return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code,
				domain.NewError(domain.KindValidation, "grupos inexistentes").WithDetails(missing))
		}
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID: uuid.New().String(), Code: in.Code, TranslationKey: in.TranslationKey,
		StatusCode: in.StatusCode, IsPublished: false, Price: in.Price,
		CreatedAt: now, CreatedBy: in.CreatedBy, UpdatedAt: now, UpdatedBy: in.CreatedBy,
	}
	err = uc.tx.RunProducts(ctx, func(products repository.ProductRepository) error {
		if err := products.Create(product); err != nil {
			return err
		}
		for _, tr := range in.Translations {
			if err := products.InsertTranslation(&entity.ProductTranslation{
				ProductID: product.ID, Lang: tr.Lang, Name: tr.Name,
				ShortDescription: tr.ShortDescription, FullDescription: tr.FullDescription,
				TechSpecs: tr.TechSpecs,
			}); err != nil {
				return err
			}
		}
		if err := products.InsertUserRelation(product.ID, in.OwnerID, entity.RelationOwner); err != nil {
			return err
		}
		for _, groupID := range groupIDs {
			if err := products.InsertGroupRelation(product.ID, groupID, entity.RelationSpecialist); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "product.create", in.CreatedBy, in.Code, err)
	}

	uc.sink.Publish(ctx, audit.Event{
		Action: "product.create", Actor: in.CreatedBy, Resource: product.ID,
		Outcome: audit.OutcomeSuccess, Message: "producto creado",
		Details: map[string]any{"code": product.Code},
	})
	return productToResponse(product, in.Translations), nil
}

func (uc *UseCase) validateCreate(in dto.CreateProductRequest) error {
	if in.Code == "" || in.TranslationKey == "" || in.StatusCode == "" {
		return domain.NewError(domain.KindValidation, "code, translationKey y statusCode son requeridos")
	}
	if in.OwnerID == "" {
		return domain.NewError(domain.KindValidation, "ownerId es requerido")
	}
	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return domain.NewError(domain.KindValidation, "price no puede ser negativo")
	}
	for _, tr := range in.Translations {
		if translationFromPayload(tr).Complete() {
			return nil
		}
	}
	return domain.NewError(domain.KindValidation, "se requiere al menos una traducción completa (name y fullDescription)")
}

// Update aplica un update parcial: solo las columnas presentes en el request
// entran a la lista declarativa; updated_by/updated_at se estampan siempre.
func (uc *UseCase) Update(ctx context.Context, id string, scope access.Scope, actorID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewErrorf(domain.KindNotFound, "producto %s no encontrado", id)
	}
	ok, err := uc.checker.CanAccess(scope, actorID, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.KindPermission, "Access denied to product "+id)
	}

	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return nil, domain.NewError(domain.KindValidation, "price no puede ser negativo")
	}
	var cols []repository.ColumnValue
	if in.Code != nil {
		cols = append(cols, repository.ColumnValue{Column: "code", Value: *in.Code})
	}
	if in.TranslationKey != nil {
		cols = append(cols, repository.ColumnValue{Column: "translation_key", Value: *in.TranslationKey})
	}
	if in.StatusCode != nil {
		cols = append(cols, repository.ColumnValue{Column: "status_code", Value: *in.StatusCode})
	}
	if in.Price != nil {
		cols = append(cols, repository.ColumnValue{Column: "price", Value: *in.Price})
	}
	if len(cols) == 0 {
		return nil, domain.NewError(domain.KindValidation, "el request no trae campos para actualizar")
	}

	updatedBy := in.UpdatedBy
	if updatedBy == "" {
		updatedBy = actorID
	}
	rows, err := uc.productRepo.UpdateColumns(id, updatedBy, cols)
	if err != nil {
		return nil, uc.fail(ctx, "product.update", actorID, id, err)
	}
	if rows == 0 {
		return nil, uc.fail(ctx, "product.update", actorID, id,
			domain.NewError(domain.KindInternal, "el update no afectó ninguna fila"))
	}

	uc.sink.Publish(ctx, audit.Event{
		Action: "product.update", Actor: actorID, Resource: id,
		Outcome: audit.OutcomeSuccess, Message: "producto actualizado",
		Details: map[string]any{"columns": len(cols)},
	})
	updated, err := uc.productRepo.GetByID(id)
	if err != nil || updated == nil {
		return nil, err
	}
	return productToResponse(updated, nil), nil
}

// Delete borra un lote de productos. Ids denegados por scope o no encontrados
// se reportan como errores por item; el lote tiene éxito parcial y solo un
// fallo de infraestructura revierte la transacción completa.
func (uc *UseCase) Delete(ctx context.Context, scope access.Scope, actorID string, in dto.DeleteProductsRequest) (*dto.DeleteProductsResponse, error) {
	deletedBy := in.DeletedBy
	if deletedBy == "" {
		deletedBy = actorID
	}
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.delete", Actor: deletedBy, Resource: "",
		Outcome: audit.OutcomeEntry, Message: "borrar productos",
		Details: map[string]any{"requested": len(in.IDs)},
	})

	ids := reconcile.Dedupe(in.IDs)
	if len(ids) == 0 {
		return nil, uc.fail(ctx, "product.delete", deletedBy, "",
			domain.NewError(domain.KindValidation, "ids es requerido"))
	}

	allowed, denied, err := uc.checker.FilterProducts(scope, actorID, ids)
	if err != nil {
		return nil, uc.fail(ctx, "product.delete", deletedBy, "", err)
	}

	itemErrors := make([]dto.ItemError, 0, len(denied))
	for _, d := range denied {
		itemErrors = append(itemErrors, dto.ItemError{ID: d.ID, Error: d.Error})
	}

	var deleted int
	err = uc.tx.RunProducts(ctx, func(products repository.ProductRepository) error {
		for _, id := range allowed {
			rows, err := products.Delete(id)
			if err != nil {
				return err
			}
			if rows == 0 {
				itemErrors = append(itemErrors, dto.ItemError{ID: id, Error: msgProductNotFound})
				continue
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "product.delete", deletedBy, "", err)
	}

	if deleted > 0 {
		uc.sink.Publish(ctx, audit.Event{
			Action: "product.delete", Actor: deletedBy, Resource: "",
			Outcome: audit.OutcomeRemoved, Message: "productos borrados",
			Details: map[string]any{"count": deleted},
		})
	}
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.delete", Actor: deletedBy, Resource: "",
		Outcome: audit.OutcomeSuccess, Message: "borrar productos",
		Details: map[string]any{"deleted": deleted, "errors": len(itemErrors)},
	})
	return &dto.DeleteProductsResponse{
		Success: true, TotalDeleted: deleted, TotalErrors: len(itemErrors), Errors: itemErrors,
	}, nil
}

// ChangeOwner transfiere el owner único del producto. Si el nuevo owner es el
// actual, no escribe nada y responde éxito con el mismo oldOwnerId; si el
// update no afecta filas es un error interno, nunca un éxito silencioso.
func (uc *UseCase) ChangeOwner(ctx context.Context, productID string, in dto.ChangeOwnerRequest) (*dto.ChangeOwnerResponse, error) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.change_owner", Actor: in.ChangedBy, Resource: productID,
		Outcome: audit.OutcomeEntry, Message: "cambiar owner de producto",
	})

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, uc.fail(ctx, "product.change_owner", in.ChangedBy, productID, err)
	}
	if product == nil {
		return nil, uc.fail(ctx, "product.change_owner", in.ChangedBy, productID,
			domain.NewErrorf(domain.KindNotFound, "producto %s no encontrado", productID))
	}

	newOwner, err := uc.resolveOwner(in)
	if err != nil {
		return nil, uc.fail(ctx, "product.change_owner", in.ChangedBy, productID, err)
	}

	oldOwnerID, err := uc.productRepo.OwnerID(productID)
	if err != nil {
		return nil, uc.fail(ctx, "product.change_owner", in.ChangedBy, productID, err)
	}
	if newOwner.ID == oldOwnerID {
		return &dto.ChangeOwnerResponse{
			Success: true, Message: "el usuario ya es owner del producto", OldOwnerID: oldOwnerID,
		}, nil
	}

	err = uc.tx.RunProducts(ctx, func(products repository.ProductRepository) error {
		rows, err := products.UpdateOwnerRow(productID, newOwner.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.NewError(domain.KindInternal, "el cambio de owner no afectó ninguna fila")
		}
		return products.StampUpdated(productID, in.ChangedBy)
	})
	if err != nil {
		return nil, uc.fail(ctx, "product.change_owner", in.ChangedBy, productID, err)
	}

	uc.sink.Publish(ctx, audit.Event{
		Action: "product.change_owner", Actor: in.ChangedBy, Resource: productID,
		Outcome: audit.OutcomeChanged, Message: "owner cambiado",
		Details: map[string]any{"old_owner": oldOwnerID, "new_owner": newOwner.ID},
	})
	uc.sink.Publish(ctx, audit.Event{
		Action: "product.change_owner", Actor: in.ChangedBy, Resource: productID,
		Outcome: audit.OutcomeSuccess, Message: "cambiar owner de producto",
	})
	return &dto.ChangeOwnerResponse{Success: true, Message: "owner actualizado", OldOwnerID: oldOwnerID}, nil
}

// resolveOwner encuentra el nuevo owner por id o username; con ambos gana el id.
func (uc *UseCase) resolveOwner(in dto.ChangeOwnerRequest) (*entity.User, error) {
	switch {
	case in.NewOwnerID != "":
		user, err := uc.userRepo.GetByID(in.NewOwnerID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.NewErrorf(domain.KindNotFound, "usuario %s no encontrado", in.NewOwnerID)
		}
		return user, nil
	case in.NewOwnerUsername != "":
		user, err := uc.userRepo.GetByUsername(in.NewOwnerUsername)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.NewErrorf(domain.KindNotFound, "usuario '%s' no encontrado", in.NewOwnerUsername)
		}
		return user, nil
	default:
		return nil, domain.NewError(domain.KindValidation, "newOwnerId o newOwnerUsername es requerido")
	}
}

// GetByID obtiene un producto con sus traducciones, filtrado por scope.
func (uc *UseCase) GetByID(ctx context.Context, id string, scope access.Scope, actorID string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	ok, err := uc.checker.CanAccess(scope, actorID, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.KindPermission, "Access denied to product "+id)
	}
	translations, err := uc.productRepo.Translations(id)
	if err != nil {
		return nil, err
	}
	payloads := make([]dto.TranslationPayload, 0, len(translations))
	for _, tr := range translations {
		payloads = append(payloads, dto.TranslationPayload{
			Lang: tr.Lang, Name: tr.Name, ShortDescription: tr.ShortDescription,
			FullDescription: tr.FullDescription, TechSpecs: tr.TechSpecs,
		})
	}
	return productToResponse(product, payloads), nil
}

// List lista productos paginados. Con scope "own" cada producto pasa el
// chequeo de acceso antes de entrar a la lista visible.
func (uc *UseCase) List(ctx context.Context, scope access.Scope, actorID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		ok, err := uc.checker.CanAccess(scope, actorID, p.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		items = append(items, *productToResponse(p, nil))
	}
	return &dto.ProductListResponse{
		Success: true, Items: items, Total: total,
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func productToResponse(p *entity.Product, translations []dto.TranslationPayload) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID: p.ID, Code: p.Code, TranslationKey: p.TranslationKey,
		StatusCode: p.StatusCode, IsPublished: p.IsPublished, Price: p.Price,
		Translations: translations, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func translationFromPayload(tr dto.TranslationPayload) entity.ProductTranslation {
	return entity.ProductTranslation{
		Lang: tr.Lang, Name: tr.Name, ShortDescription: tr.ShortDescription,
		FullDescription: tr.FullDescription, TechSpecs: tr.TechSpecs,
	}
}

func (uc *UseCase) fail(ctx context.Context, action, actor, resource string, err error) error {
	uc.sink.Publish(ctx, audit.Event{
		Action: action, Actor: actor, Resource: resource,
		Outcome: audit.OutcomeError, Message: err.Error(),
	})
	return err
}
