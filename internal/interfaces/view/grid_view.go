package view

import (
	"bytes"
	"context"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/jugo-cart/internal/application/usecase"
)

// GridView renderiza las tarjetas de producto del catálogo. Si el catálogo
// no está disponible renderiza un estado de error visible (el widget
// original dejaba la grilla vacía en silencio).
type GridView struct {
	catalog *usecase.CatalogUseCase
	engine  *html.Engine
}

// gridProduct binding de una tarjeta de producto.
type gridProduct struct {
	ID        string
	Name      string
	Image     string
	Price     string // "$X.YY" para mostrar
	PriceAttr string // valor crudo para data-price
}

// gridData binding de la plantilla partials/grid.
type gridData struct {
	Unavailable bool
	Products    []gridProduct
}

// NewGridView construye la vista de la grilla.
func NewGridView(catalog *usecase.CatalogUseCase, engine *html.Engine) *GridView {
	return &GridView{catalog: catalog, engine: engine}
}

// Render produce el fragmento de la grilla para el catálogo actual.
func (v *GridView) Render(ctx context.Context) ([]byte, error) {
	data := gridData{}
	products, err := v.catalog.Products(ctx)
	if err != nil {
		data.Unavailable = true
	}
	for _, p := range products {
		data.Products = append(data.Products, gridProduct{
			ID:        p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     usecase.FormatUSD(p.Price),
			PriceAttr: p.Price.String(),
		})
	}

	var buf bytes.Buffer
	if err := v.engine.Render(&buf, "partials/grid", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decimalInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
