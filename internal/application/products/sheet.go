package products

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/application/access"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// SheetRegion es una fila de región para la ficha: región resuelta a su
// nombre más la categoría imponible del binding.
type SheetRegion struct {
	Code       string
	Name       string
	CategoryID *string
}

// SheetData agrupa todo lo que la ficha de producto imprime.
type SheetData struct {
	Product      *entity.Product
	Translations []entity.ProductTranslation
	Regions      []SheetRegion
	Sections     []string // nombres de secciones donde está publicado
}

// SheetGenerator renderiza la ficha de producto. La implementación vive en
// infraestructura (maroto).
type SheetGenerator interface {
	GenerateProductSheet(ctx context.Context, data SheetData) ([]byte, error)
}

// SheetUseCase arma la ficha PDF de un producto: junta producto,
// traducciones, regiones y secciones, y delega el render al generador.
type SheetUseCase struct {
	productRepo repository.ProductRepository
	regionRepo  repository.RegionRepository
	bindingRepo repository.ProductRegionRepository
	sectionRepo repository.SectionRepository
	checker     *access.Checker
	generator   SheetGenerator
}

// NewSheetUseCase construye el caso de uso de la ficha.
func NewSheetUseCase(
	productRepo repository.ProductRepository,
	regionRepo repository.RegionRepository,
	bindingRepo repository.ProductRegionRepository,
	sectionRepo repository.SectionRepository,
	checker *access.Checker,
	generator SheetGenerator,
) *SheetUseCase {
	return &SheetUseCase{
		productRepo: productRepo, regionRepo: regionRepo, bindingRepo: bindingRepo,
		sectionRepo: sectionRepo, checker: checker, generator: generator,
	}
}

// Generate produce los bytes del PDF de la ficha, respetando el scope del actor.
func (uc *SheetUseCase) Generate(ctx context.Context, productID string, scope access.Scope, actorID string) ([]byte, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewError(domain.KindNotFound, msgProductNotFound)
	}
	ok, err := uc.checker.CanAccess(scope, actorID, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.KindPermission, "Access denied to product "+productID)
	}

	translations, err := uc.productRepo.Translations(productID)
	if err != nil {
		return nil, err
	}
	regions, err := uc.sheetRegions(productID)
	if err != nil {
		return nil, err
	}
	sections, err := uc.sheetSections(productID)
	if err != nil {
		return nil, err
	}

	return uc.generator.GenerateProductSheet(ctx, SheetData{
		Product: product, Translations: translations,
		Regions: regions, Sections: sections,
	})
}

// sheetRegions resuelve cada binding a su región de referencia.
func (uc *SheetUseCase) sheetRegions(productID string) ([]SheetRegion, error) {
	bindings, err := uc.bindingRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	if len(bindings) == 0 {
		return nil, nil
	}
	all, err := uc.regionRepo.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Region, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}
	out := make([]SheetRegion, 0, len(bindings))
	for _, b := range bindings {
		r := byID[b.RegionID]
		out = append(out, SheetRegion{Code: r.Code, Name: r.Name, CategoryID: b.CategoryID})
	}
	return out, nil
}

// sheetSections resuelve los ids publicados a nombres de sección.
func (uc *SheetUseCase) sheetSections(productID string) ([]string, error) {
	ids, err := uc.sectionRepo.PublishedSectionIDs(productID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	all, err := uc.sectionRepo.List()
	if err != nil {
		return nil, err
	}
	published := make(map[string]bool, len(ids))
	for _, id := range ids {
		published[id] = true
	}
	var names []string
	for _, s := range all {
		if published[s.ID] {
			names = append(names, s.Name)
		}
	}
	return names, nil
}
