package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
)

// Totals totales derivados de un registro del carrito.
type Totals struct {
	Subtotal decimal.Decimal
	Qty      int
}

// CalcTotals deriva subtotal (Σ price*qty) y cantidad total (Σ qty) de un
// snapshot del registro. Función pura, sin I/O; aritmética decimal exacta
// (el widget original sumaba en punto flotante binario).
func CalcTotals(record *entity.CartRecord) Totals {
	subtotal := decimal.Zero
	qty := 0
	for _, li := range record.Items {
		subtotal = subtotal.Add(li.Price.Mul(decimal.NewFromInt(int64(li.Qty))))
		qty += li.Qty
	}
	return Totals{Subtotal: subtotal, Qty: qty}
}

// FormatUSD formatea un monto como moneda con exactamente dos decimales.
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
