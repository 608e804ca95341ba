package usecase

import (
	"context"

	"github.com/jhoicas/jugo-cart/internal/domain"
	"github.com/jhoicas/jugo-cart/internal/domain/entity"
)

// ReceiptGenerator define el puerto de salida para la representación
// imprimible del carrito. La implementación concreta usa Maroto; para tests
// se puede inyectar un generador falso.
type ReceiptGenerator interface {
	GenerateCartPDF(ctx context.Context, record *entity.CartRecord, totals Totals) ([]byte, error)
}

// ReceiptUseCase genera el comprobante PDF del carrito actual.
type ReceiptUseCase struct {
	cart *CartUseCase
	gen  ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(cart *CartUseCase, gen ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{cart: cart, gen: gen}
}

// Generate produce el PDF del carrito. Un carrito vacío no tiene comprobante
// (el control de checkout está deshabilitado en ese estado).
func (uc *ReceiptUseCase) Generate(ctx context.Context, cartID string) ([]byte, error) {
	record := uc.cart.Read(ctx, cartID)
	if record.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	return uc.gen.GenerateCartPDF(ctx, record, CalcTotals(record))
}
