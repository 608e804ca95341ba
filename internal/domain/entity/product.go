package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product es un producto del catálogo. La forma JSON externa es
// {id, name, price, img} con price numérico (contrato del documento
// products.json que consume la tienda).
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

type productJSON struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
	Image string          `json:"img"`
}

// MarshalJSON serializa el producto con el precio como número JSON.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:    p.ID,
		Name:  p.Name,
		Price: json.RawMessage(p.Price.String()),
		Image: p.Image,
	})
}

// UnmarshalJSON acepta el precio como número o string.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
		Image string          `json:"img"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal product: %w", err)
	}
	p.ID = raw.ID
	p.Name = raw.Name
	p.Price = raw.Price
	p.Image = raw.Image
	return nil
}
