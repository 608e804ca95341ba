package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
)

// ItemMetaRequest metadatos que acompañan a la acción "add". Se escriben
// solo en la primera inserción del producto.
type ItemMetaRequest struct {
	Price decimal.Decimal `json:"price"`
	Title string          `json:"title"`
	Image string          `json:"image"`
}

// ActionRequest acción discriminada sobre el carrito: reemplaza la
// delegación de eventos del DOM por un despacho explícito.
type ActionRequest struct {
	Action    string           `json:"action"` // add | inc | dec
	ProductID string           `json:"product_id"`
	Meta      *ItemMetaRequest `json:"meta,omitempty"` // requerido para add
}

// SetQuantityRequest cantidad absoluta para una línea. Valores <= 0
// eliminan la línea.
type SetQuantityRequest struct {
	Qty int `json:"qty"`
}

// LineItemResponse una línea del carrito en respuestas JSON.
type LineItemResponse struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"` // price * qty
}

// CartResponse estado completo del carrito más totales derivados.
type CartResponse struct {
	Items    []LineItemResponse `json:"items"` // orden de inserción
	Qty      int                `json:"qty"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// DrawerStateResponse visibilidad del panel del carrito.
type DrawerStateResponse struct {
	Open bool `json:"open"`
}

// ToCartResponse arma la respuesta a partir de un snapshot del registro y
// sus totales.
func ToCartResponse(record *entity.CartRecord, subtotal decimal.Decimal, qty int) *CartResponse {
	items := make([]LineItemResponse, 0, len(record.Items))
	for _, id := range record.SortedIDs() {
		li := record.Items[id]
		items = append(items, LineItemResponse{
			ProductID: id,
			Title:     li.Title,
			Image:     li.Image,
			Price:     li.Price,
			Qty:       li.Qty,
			LineTotal: li.Price.Mul(decimal.NewFromInt(int64(li.Qty))),
		})
	}
	return &CartResponse{Items: items, Qty: qty, Subtotal: subtotal}
}
