package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/jugo-cart/internal/domain"
	"github.com/jhoicas/jugo-cart/internal/domain/entity"
)

// Acciones despachables sobre el carrito. Un despacho discriminado
// reemplaza la delegación de eventos sobre el árbol del DOM del widget
// original: el handler HTTP entrega (acción, id) y este caso de uso decide
// la llamada al carrito.
const (
	ActionAdd = "add"
	ActionInc = "inc"
	ActionDec = "dec"
)

// DrawerUseCase estado de visibilidad del panel del carrito y despacho de
// acciones de interacción. La visibilidad es estado efímero por sesión (el
// widget original tampoco la persistía): vive en memoria y arranca cerrada.
type DrawerUseCase struct {
	cart *CartUseCase

	mu   sync.RWMutex
	open map[string]bool
}

// NewDrawerUseCase construye el controlador del panel.
func NewDrawerUseCase(cart *CartUseCase) *DrawerUseCase {
	return &DrawerUseCase{cart: cart, open: map[string]bool{}}
}

// Open muestra el panel. Idempotente: abrir un panel abierto no es error.
func (uc *DrawerUseCase) Open(cartID string) {
	uc.mu.Lock()
	uc.open[cartID] = true
	uc.mu.Unlock()
}

// Close oculta el panel. Idempotente; también responde a la tecla Escape,
// sin importar el foco, y nunca toca el contenido del carrito.
func (uc *DrawerUseCase) Close(cartID string) {
	uc.mu.Lock()
	delete(uc.open, cartID)
	uc.mu.Unlock()
}

// Toggle alterna la visibilidad y devuelve el estado resultante.
func (uc *DrawerUseCase) Toggle(cartID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.open[cartID] {
		delete(uc.open, cartID)
		return false
	}
	uc.open[cartID] = true
	return true
}

// IsOpen devuelve la visibilidad actual (false para sesiones nuevas).
func (uc *DrawerUseCase) IsOpen(cartID string) bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.open[cartID]
}

// Clear vacía el carrito, exigiendo confirmación explícita del usuario.
// Sin confirmación el estado queda intacto.
func (uc *DrawerUseCase) Clear(ctx context.Context, cartID string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return uc.cart.Clear(ctx, cartID)
}

// Dispatch ejecuta una acción discriminada sobre el carrito:
//
//	add      -> AddItem con los metadatos de la tarjeta de producto y
//	            apertura del panel (retroalimentación visible)
//	inc, dec -> SetQuantity(qty actual ± 1); si el producto no está en el
//	            registro la acción se ignora en silencio
//
// Cualquier otra acción es domain.ErrInvalidAction.
func (uc *DrawerUseCase) Dispatch(ctx context.Context, cartID, action, productID string, meta *entity.ItemMeta) (*entity.CartRecord, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch action {
	case ActionAdd:
		if meta == nil {
			return nil, domain.ErrInvalidInput
		}
		record, err := uc.cart.AddItem(ctx, cartID, productID, *meta)
		if err != nil {
			return nil, err
		}
		uc.Open(cartID)
		return record, nil
	case ActionInc, ActionDec:
		record := uc.cart.Read(ctx, cartID)
		li, ok := record.Items[productID]
		if !ok {
			return record, nil
		}
		delta := 1
		if action == ActionDec {
			delta = -1
		}
		return uc.cart.SetQuantity(ctx, cartID, productID, li.Qty+delta)
	default:
		return nil, domain.ErrInvalidAction
	}
}
