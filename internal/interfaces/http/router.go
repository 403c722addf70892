package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/membership"
	"github.com/jhoicas/backoffice-api/internal/application/pairing"
	"github.com/jhoicas/backoffice-api/internal/application/products"
	"github.com/jhoicas/backoffice-api/internal/application/publishing"
	"github.com/jhoicas/backoffice-api/internal/application/regions"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	UserUC       *usecase.UserUseCase
	GroupUC      *usecase.GroupUseCase
	MembershipUC *membership.UseCase
	ProductUC    *products.UseCase
	SheetUC      *products.SheetUseCase
	PairingUC    *pairing.UseCase
	RegionsUC    *regions.UseCase
	PublishingUC *publishing.UseCase
	JWTSecret    string
	Errors       ErrorMapper
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Errors)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.MembershipUC, deps.Errors)
	users.Get("/search", userHandler.Search)
	users.Post("/:userId/add-to-groups", userHandler.AddToGroups)

	// Groups (protegido)
	groups := protected.Group("/groups")
	groupHandler := NewGroupHandler(deps.GroupUC, deps.MembershipUC, deps.Errors)
	groups.Post("/", groupHandler.Create)
	groups.Get("/", groupHandler.List)
	groups.Get("/:id", groupHandler.GetByID)
	groups.Post("/:groupId/add-users", groupHandler.AddUsers)
	groups.Post("/:id/change-owner", groupHandler.ChangeOwner)

	// Products (protegido)
	productsGroup := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.RegionsUC, deps.SheetUC, deps.Errors)
	productsGroup.Post("/", productHandler.Create)
	productsGroup.Get("/", productHandler.List)
	productsGroup.Delete("/", productHandler.Delete)
	productsGroup.Get("/:id/sheet.pdf", productHandler.Sheet)
	productsGroup.Get("/:id/regions", productHandler.GetRegions)
	productsGroup.Put("/:id/regions", productHandler.UpdateRegions)
	productsGroup.Post("/:id/change-owner", productHandler.ChangeOwner)
	productsGroup.Get("/:id", productHandler.GetByID)
	productsGroup.Put("/:id", productHandler.Update)

	// Product pairs (protegido). Verbos como rutas: viene del contrato del UI.
	pairs := protected.Group("/product-pairs")
	pairHandler := NewPairHandler(deps.PairingUC, deps.Errors)
	pairs.Post("/create", pairHandler.Create)
	pairs.Post("/read", pairHandler.Read)
	pairs.Post("/update", pairHandler.Update)
	pairs.Post("/delete", pairHandler.Delete)

	// Catalog y referencia (protegido)
	catalogHandler := NewCatalogHandler(deps.PublishingUC, deps.RegionsUC, deps.Errors)
	catalog := protected.Group("/catalog")
	catalog.Put("/update-sections-publish", catalogHandler.UpdateSectionsPublish)
	catalog.Get("/sections", catalogHandler.ListSections)
	protected.Get("/regions", catalogHandler.ListRegions)
}
