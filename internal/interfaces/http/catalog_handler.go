package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jugo-cart/internal/application/dto"
	"github.com/jhoicas/jugo-cart/internal/application/usecase"
)

// CatalogHandler expone el catálogo de productos.
type CatalogHandler struct {
	catalog *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(catalog *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List godoc
// @Summary      Listar productos del catálogo
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.Products(c.UserContext())
	if err != nil {
		// Fallo visible, no silencio: el widget original se tragaba el
		// rechazo del fetch y dejaba la grilla vacía.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "CATALOG_UNAVAILABLE", Message: "catálogo no disponible",
		})
	}
	return c.JSON(dto.CatalogResponse{Products: products})
}

// Refresh godoc
// @Summary      Recargar el catálogo desde su origen
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	if err := h.catalog.Refresh(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "CATALOG_UNAVAILABLE", Message: "la recarga del catálogo falló",
		})
	}
	return h.List(c)
}
