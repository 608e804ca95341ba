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

	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/internal/domain/repository"
	infracatalog "github.com/jhoicas/jugo-cart/internal/infrastructure/catalog"
	infrapdf "github.com/jhoicas/jugo-cart/internal/infrastructure/pdf"
	"github.com/jhoicas/jugo-cart/internal/infrastructure/postgres"
	"github.com/jhoicas/jugo-cart/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/jugo-cart/internal/interfaces/http"
	"github.com/jhoicas/jugo-cart/internal/interfaces/view"
	"github.com/jhoicas/jugo-cart/pkg/config"
	"github.com/jhoicas/jugo-cart/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Str("catalog", cfg.Catalog.Source).
		Msg("iniciando aplicación")

	if cfg.Session.Secret == "" {
		if cfg.App.Env != "development" {
			log.Fatal().Msg("SESSION_SECRET es requerido fuera de development")
		}
		cfg.Session.Secret = "dev-only-insecure-secret"
		log.Warn().Msg("SESSION_SECRET no definido; usando secreto de desarrollo")
	}

	ctx := context.Background()

	// Persistencia del carrito: sqlite local por defecto, postgres opcional.
	var cartRepo repository.CartRepository
	var catalogFromPool *postgres.CatalogRepo
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de PostgreSQL")
		}
		cartRepo = postgres.NewCartRepository(pool)
		if cfg.Catalog.Source == "postgres" {
			catalogFromPool = postgres.NewCatalogRepository(pool)
		}
	default:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir almacenamiento sqlite")
		}
		defer store.Close()
		cartRepo = sqlite.NewCartRepository(store)
	}

	// Origen del catálogo.
	var catalogRepo repository.CatalogRepository
	switch cfg.Catalog.Source {
	case "http":
		catalogRepo = infracatalog.NewHTTPLoader(cfg.Catalog.URL)
	case "postgres":
		if catalogFromPool == nil {
			log.Fatal().Msg("CATALOG_SOURCE=postgres requiere STORAGE_DRIVER=postgres")
		}
		catalogRepo = catalogFromPool
	default:
		catalogRepo = infracatalog.NewFileLoader(cfg.Catalog.Path)
	}

	cartUC := usecase.NewCartUseCase(cartRepo, log)
	drawerUC := usecase.NewDrawerUseCase(cartUC)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, log)
	receiptUC := usecase.NewReceiptUseCase(cartUC, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))

	engine := view.NewEngine()
	cartView, err := view.NewCartView(cartUC, engine, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar plantillas")
	}
	gridView := view.NewGridView(catalogUC, engine)

	// Render tras mutación: cada cambio del carrito reconstruye la vista.
	cartUC.SetListener(cartView)

	// Carga inicial del catálogo fuera del camino de arranque (análogo a la
	// continuación del fetch); un fallo queda expuesto como estado visible.
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		_ = catalogUC.Refresh(loadCtx)
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        engine,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Static("/static", "./web/static")

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Jugo Cart API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CartUC:    cartUC,
		DrawerUC:  drawerUC,
		CatalogUC: catalogUC,
		ReceiptUC: receiptUC,
		CartView:  cartView,
		GridView:  gridView,
		Session: httpRouter.SessionConfig{
			Secret:     cfg.Session.Secret,
			Issuer:     cfg.Session.Issuer,
			CookieName: cfg.Session.CookieName,
			ExpMinutes: cfg.Session.Expiration,
		},
		PageTitle: "Jugo Shop",
		Log:       log,
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
