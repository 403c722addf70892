package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/backoffice-api/internal/application/access"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/membership"
	"github.com/jhoicas/backoffice-api/internal/application/pairing"
	"github.com/jhoicas/backoffice-api/internal/application/products"
	"github.com/jhoicas/backoffice-api/internal/application/publishing"
	"github.com/jhoicas/backoffice-api/internal/application/regions"
	"github.com/jhoicas/backoffice-api/internal/application/settings"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	infraaudit "github.com/jhoicas/backoffice-api/internal/infrastructure/audit"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	pairRepo := postgres.NewPairRepository(pool)
	regionRepo := postgres.NewRegionRepository(pool)
	bindingRepo := postgres.NewProductRegionRepository(pool)
	sectionRepo := postgres.NewSectionRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	accessRepo := postgres.NewAccessRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sink := infraaudit.NewZerologSink(log)
	checker := access.NewChecker(accessRepo)

	// Snapshot de settings: se lee una vez al arranque; las operaciones nunca
	// vuelven a tocar la tabla dentro de una petición.
	settingsProvider := settings.NewCachedProvider(settingRepo)
	if err := settingsProvider.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar settings")
	}

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	groupUC := usecase.NewGroupUseCase(groupRepo, userRepo, sink)
	membershipUC := membership.NewUseCase(groupRepo, userRepo, settingsProvider, txRunner, sink)
	productUC := products.NewUseCase(productRepo, userRepo, groupRepo, checker, txRunner, sink)
	pairingUC := pairing.NewUseCase(productRepo, pairRepo, txRunner, sink)
	regionsUC := regions.NewUseCase(productRepo, regionRepo, bindingRepo, txRunner, sink)
	publishingUC := publishing.NewUseCase(productRepo, sectionRepo, txRunner, sink)

	sheetGenerator := infrapdf.NewMarotoSheetGenerator()
	sheetUC := products.NewSheetUseCase(productRepo, regionRepo, bindingRepo, sectionRepo, checker, sheetGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		GroupUC:      groupUC,
		MembershipUC: membershipUC,
		ProductUC:    productUC,
		SheetUC:      sheetUC,
		PairingUC:    pairingUC,
		RegionsUC:    regionsUC,
		PublishingUC: publishingUC,
		JWTSecret:    cfg.JWT.Secret,
		Errors:       httpRouter.ErrorMapper{ExposeDetails: cfg.App.Env != "production"},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
