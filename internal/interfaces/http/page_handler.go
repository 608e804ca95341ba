package http

import (
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jugo-cart/internal/application/dto"
	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/internal/interfaces/view"
)

// PageHandler sirve la página de la tienda y los fragmentos HTML que el
// cliente intercambia tras cada interacción.
type PageHandler struct {
	cart     *usecase.CartUseCase
	cartView *view.CartView
	gridView *view.GridView
	title    string
}

// NewPageHandler construye el handler.
func NewPageHandler(cart *usecase.CartUseCase, cartView *view.CartView, gridView *view.GridView, title string) *PageHandler {
	return &PageHandler{cart: cart, cartView: cartView, gridView: gridView, title: title}
}

// Shop renderiza la página completa: grilla de productos más el panel del
// carrito con su estado actual.
func (h *PageHandler) Shop(c *fiber.Ctx) error {
	cartID := GetCartID(c)
	drawer, err := h.cartView.Fragment(c.UserContext(), cartID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	grid, err := h.gridView.Render(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	totals := usecase.CalcTotals(h.cart.Read(c.UserContext(), cartID))
	return c.Render("shop", fiber.Map{
		"Title":  h.title,
		"Qty":    totals.Qty,
		"Drawer": template.HTML(drawer),
		"Grid":   template.HTML(grid),
	})
}

// CartFragment devuelve el último render del panel del carrito.
func (h *PageHandler) CartFragment(c *fiber.Ctx) error {
	fragment, err := h.cartView.Fragment(c.UserContext(), GetCartID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(fragment)
}

// GridFragment devuelve la grilla de productos renderizada.
func (h *PageHandler) GridFragment(c *fiber.Ctx) error {
	fragment, err := h.gridView.Render(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(fragment)
}
