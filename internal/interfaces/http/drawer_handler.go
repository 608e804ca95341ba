package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jugo-cart/internal/application/dto"
	"github.com/jhoicas/jugo-cart/internal/application/usecase"
)

// DrawerHandler maneja la visibilidad del panel del carrito. La tecla
// Escape del cliente termina en Close, igual que el botón de cierre y el
// clic en el overlay; ninguna de estas rutas toca el contenido del carrito.
type DrawerHandler struct {
	drawer *usecase.DrawerUseCase
}

// NewDrawerHandler construye el handler.
func NewDrawerHandler(drawer *usecase.DrawerUseCase) *DrawerHandler {
	return &DrawerHandler{drawer: drawer}
}

// Get godoc
// @Summary      Visibilidad del panel
// @Tags         drawer
// @Produce      json
// @Success      200  {object}  dto.DrawerStateResponse
// @Router       /api/drawer [get]
func (h *DrawerHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.DrawerStateResponse{Open: h.drawer.IsOpen(GetCartID(c))})
}

// Open godoc
// @Summary      Mostrar el panel (idempotente)
// @Tags         drawer
// @Produce      json
// @Success      200  {object}  dto.DrawerStateResponse
// @Router       /api/drawer/open [post]
func (h *DrawerHandler) Open(c *fiber.Ctx) error {
	h.drawer.Open(GetCartID(c))
	return c.JSON(dto.DrawerStateResponse{Open: true})
}

// Close godoc
// @Summary      Ocultar el panel (idempotente)
// @Tags         drawer
// @Produce      json
// @Success      200  {object}  dto.DrawerStateResponse
// @Router       /api/drawer/close [post]
func (h *DrawerHandler) Close(c *fiber.Ctx) error {
	h.drawer.Close(GetCartID(c))
	return c.JSON(dto.DrawerStateResponse{Open: false})
}

// Toggle godoc
// @Summary      Alternar la visibilidad del panel
// @Tags         drawer
// @Produce      json
// @Success      200  {object}  dto.DrawerStateResponse
// @Router       /api/drawer/toggle [post]
func (h *DrawerHandler) Toggle(c *fiber.Ctx) error {
	return c.JSON(dto.DrawerStateResponse{Open: h.drawer.Toggle(GetCartID(c))})
}
