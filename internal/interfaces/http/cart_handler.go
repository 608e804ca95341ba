package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/jugo-cart/internal/application/dto"
	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/internal/domain"
	"github.com/jhoicas/jugo-cart/internal/domain/entity"
)

// CartHandler maneja las peticiones HTTP del carrito.
type CartHandler struct {
	cart    *usecase.CartUseCase
	drawer  *usecase.DrawerUseCase
	receipt *usecase.ReceiptUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(cart *usecase.CartUseCase, drawer *usecase.DrawerUseCase, receipt *usecase.ReceiptUseCase) *CartHandler {
	return &CartHandler{cart: cart, drawer: drawer, receipt: receipt}
}

// Get godoc
// @Summary      Estado del carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	record := h.cart.Read(c.UserContext(), GetCartID(c))
	totals := usecase.CalcTotals(record)
	return c.JSON(dto.ToCartResponse(record, totals.Subtotal, totals.Qty))
}

// Dispatch godoc
// @Summary      Despachar una acción sobre el carrito (add | inc | dec)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ActionRequest  true  "Acción discriminada"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/actions [post]
func (h *CartHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.ActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var meta *entity.ItemMeta
	if in.Meta != nil {
		meta = &entity.ItemMeta{Price: in.Meta.Price, Title: in.Meta.Title, Image: in.Meta.Image}
	}
	record, err := h.drawer.Dispatch(c.UserContext(), GetCartID(c), in.Action, in.ProductID, meta)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAction):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ACTION", Message: "acción desconocida: " + in.Action})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y meta son requeridos"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	totals := usecase.CalcTotals(record)
	return c.JSON(dto.ToCartResponse(record, totals.Subtotal, totals.Qty))
}

// SetQuantity godoc
// @Summary      Fijar la cantidad absoluta de una línea
// @Description  Cantidades <= 0 eliminan la línea. Un producto ausente es un no-op silencioso.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.SetQuantityRequest  true  "Cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.cart.SetQuantity(c.UserContext(), GetCartID(c), id, in.Qty)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	totals := usecase.CalcTotals(record)
	return c.JSON(dto.ToCartResponse(record, totals.Subtotal, totals.Qty))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Description  Requiere confirm=true; sin confirmación el estado queda intacto.
// @Tags         cart
// @Produce      json
// @Param        confirm  query  bool  true  "Confirmación explícita"
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	confirmed := c.QueryBool("confirm")
	if err := h.drawer.Clear(c.UserContext(), GetCartID(c), confirmed); err != nil {
		if errors.Is(err, domain.ErrConfirmationRequired) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: "agregar confirm=true para vaciar el carrito"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToCartResponse(entity.NewCartRecord(), decimal.Zero, 0))
}

// Receipt godoc
// @Summary      Comprobante PDF del carrito
// @Tags         cart
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cart/receipt [get]
func (h *CartHandler) Receipt(c *fiber.Ctx) error {
	pdf, err := h.receipt.Generate(c.UserContext(), GetCartID(c))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CART_EMPTY", Message: "el carrito está vacío"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cart-receipt.pdf"`)
	return c.Send(pdf)
}
