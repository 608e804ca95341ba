package entity

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// LineItem representa un producto dentro del carrito. Qty siempre es >= 1:
// una línea con cantidad 0 se elimina del registro, nunca se conserva.
// Pos conserva el orden de inserción para el renderizado (el registro es un
// mapa y el orden de sus claves no es estable).
type LineItem struct {
	Price decimal.Decimal
	Title string
	Image string
	Qty   int
	Pos   int
}

// lineItemJSON es la forma serializada de LineItem. Price se emite como
// literal numérico (json.RawMessage) y nunca como string, para que el
// registro persistido haga round-trip sin pérdida estructural.
type lineItemJSON struct {
	Price json.RawMessage `json:"price"`
	Title string          `json:"title"`
	Image string          `json:"image"`
	Qty   int             `json:"qty"`
	Pos   int             `json:"pos"`
}

// MarshalJSON serializa la línea con el precio como número JSON.
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		Price: json.RawMessage(li.Price.String()),
		Title: li.Title,
		Image: li.Image,
		Qty:   li.Qty,
		Pos:   li.Pos,
	})
}

// UnmarshalJSON acepta el precio como número o como string (registros
// escritos por versiones anteriores del widget usaban float).
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Price decimal.Decimal `json:"price"`
		Title string          `json:"title"`
		Image string          `json:"image"`
		Qty   int             `json:"qty"`
		Pos   int             `json:"pos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal line item: %w", err)
	}
	li.Price = raw.Price
	li.Title = raw.Title
	li.Image = raw.Image
	li.Qty = raw.Qty
	li.Pos = raw.Pos
	return nil
}

// ItemMeta metadatos de un producto al momento de agregarlo al carrito.
// Solo se escriben en la primera inserción; un addItem posterior con
// metadatos distintos no los actualiza.
type ItemMeta struct {
	Price decimal.Decimal `json:"price"`
	Title string          `json:"title"`
	Image string          `json:"image"`
}

// CartRecord es el estado completo del carrito: mapa de id de producto a
// línea. Las claves son únicas por construcción.
type CartRecord struct {
	Items map[string]*LineItem `json:"items"`
}

// NewCartRecord crea un registro vacío listo para usar.
func NewCartRecord() *CartRecord {
	return &CartRecord{Items: map[string]*LineItem{}}
}

// Normalize garantiza que Items no sea nil (un registro deserializado de
// `{"items":null}` o `{}` debe comportarse como vacío, no fallar).
func (c *CartRecord) Normalize() {
	if c.Items == nil {
		c.Items = map[string]*LineItem{}
	}
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *CartRecord) IsEmpty() bool {
	return len(c.Items) == 0
}

// SortedIDs devuelve los ids de producto en orden de inserción (Pos
// ascendente, desempate por id para que el orden sea determinista).
func (c *CartRecord) SortedIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for id := range c.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := c.Items[ids[i]], c.Items[ids[j]]
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		return ids[i] < ids[j]
	})
	return ids
}

// NextPos devuelve la posición de inserción para una línea nueva.
func (c *CartRecord) NextPos() int {
	next := 0
	for _, li := range c.Items {
		if li.Pos >= next {
			next = li.Pos + 1
		}
	}
	return next
}

// Clone devuelve una copia profunda del registro (los lectores reciben
// snapshots; solo el caso de uso del carrito muta el registro).
func (c *CartRecord) Clone() *CartRecord {
	out := NewCartRecord()
	for id, li := range c.Items {
		cp := *li
		out.Items[id] = &cp
	}
	return out
}
