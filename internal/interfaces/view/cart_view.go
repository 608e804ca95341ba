package view

import (
	"bytes"
	"context"
	"sync"

	"github.com/gofiber/template/html/v2"

	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/pkg/logger"
)

var _ usecase.CartListener = (*CartView)(nil)

// CartView vista derivada del registro del carrito: no guarda estado propio
// más allá del caché del último render. Implementa el contrato
// "render tras mutación": cada cambio del carrito reconstruye por completo
// el fragmento del panel (sin parches incrementales; los carritos son
// pequeños) leyendo el registro recién persistido.
type CartView struct {
	cart   *usecase.CartUseCase
	engine *html.Engine
	log    *logger.Logger

	mu    sync.RWMutex
	cache map[string][]byte // fragmento renderizado por sesión
}

// drawerItem una fila del panel, con importes ya formateados.
type drawerItem struct {
	ID        string
	Title     string
	Image     string
	Qty       int
	LineTotal string // "$X.YY" = price * qty
}

// drawerData binding de la plantilla partials/drawer.
type drawerData struct {
	Empty    bool
	Qty      int
	Subtotal string // "$X.YY"
	Items    []drawerItem
}

// NewCartView construye la vista y carga las plantillas.
func NewCartView(cart *usecase.CartUseCase, engine *html.Engine, log *logger.Logger) (*CartView, error) {
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return &CartView{cart: cart, engine: engine, log: log, cache: map[string][]byte{}}, nil
}

// CartChanged implementa usecase.CartListener: se invoca una vez por
// mutación, de forma síncrona, después de persistir.
func (v *CartView) CartChanged(cartID string) {
	if _, err := v.Render(context.Background(), cartID); err != nil {
		v.log.Error().Err(err).Str("cart_id", cartID).Msg("re-render del carrito falló")
	}
}

// Render lee el registro actual (lectura tras escritura), calcula totales y
// reconstruye el fragmento del panel, dejándolo en caché.
func (v *CartView) Render(ctx context.Context, cartID string) ([]byte, error) {
	record := v.cart.Read(ctx, cartID)
	totals := usecase.CalcTotals(record)

	data := drawerData{
		Empty:    totals.Qty == 0,
		Qty:      totals.Qty,
		Subtotal: usecase.FormatUSD(totals.Subtotal),
	}
	for _, id := range record.SortedIDs() {
		li := record.Items[id]
		data.Items = append(data.Items, drawerItem{
			ID:        id,
			Title:     li.Title,
			Image:     li.Image,
			Qty:       li.Qty,
			LineTotal: usecase.FormatUSD(li.Price.Mul(decimalInt(li.Qty))),
		})
	}

	var buf bytes.Buffer
	if err := v.engine.Render(&buf, "partials/drawer", data); err != nil {
		return nil, err
	}
	fragment := buf.Bytes()

	v.mu.Lock()
	v.cache[cartID] = fragment
	v.mu.Unlock()
	return fragment, nil
}

// Fragment devuelve el último render del panel; si no hay caché para la
// sesión renderiza en el momento.
func (v *CartView) Fragment(ctx context.Context, cartID string) ([]byte, error) {
	v.mu.RLock()
	fragment, ok := v.cache[cartID]
	v.mu.RUnlock()
	if ok {
		return fragment, nil
	}
	return v.Render(ctx, cartID)
}
