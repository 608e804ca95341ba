package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/internal/interfaces/view"
	"github.com/jhoicas/jugo-cart/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CartUC    *usecase.CartUseCase
	DrawerUC  *usecase.DrawerUseCase
	CatalogUC *usecase.CatalogUseCase
	ReceiptUC *usecase.ReceiptUseCase
	CartView  *view.CartView
	GridView  *view.GridView
	Session   SessionConfig
	PageTitle string
	Log       *logger.Logger
}

// Router registra las rutas del servicio. Todo lo que depende del carrito
// pasa por el middleware de sesión.
func Router(app *fiber.App, deps RouterDeps) {
	withSession := SessionMiddleware(deps.Session, deps.CartUC, deps.Log)

	// Página y fragmentos (HTML)
	pageHandler := NewPageHandler(deps.CartUC, deps.CartView, deps.GridView, deps.PageTitle)
	app.Get("/", withSession, pageHandler.Shop)
	fragments := app.Group("/fragments", withSession)
	fragments.Get("/cart", pageHandler.CartFragment)
	fragments.Get("/grid", pageHandler.GridFragment)

	api := app.Group("/api", withSession)

	// Cart
	cartHandler := NewCartHandler(deps.CartUC, deps.DrawerUC, deps.ReceiptUC)
	cart := api.Group("/cart")
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/actions", cartHandler.Dispatch)
	cart.Put("/items/:id", cartHandler.SetQuantity)
	cart.Get("/receipt", cartHandler.Receipt)

	// Drawer
	drawerHandler := NewDrawerHandler(deps.DrawerUC)
	drawer := api.Group("/drawer")
	drawer.Get("/", drawerHandler.Get)
	drawer.Post("/open", drawerHandler.Open)
	drawer.Post("/close", drawerHandler.Close)
	drawer.Post("/toggle", drawerHandler.Toggle)

	// Catalog
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog := api.Group("/catalog")
	catalog.Get("/", catalogHandler.List)
	catalog.Post("/refresh", catalogHandler.Refresh)
}
