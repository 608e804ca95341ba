package repository

import (
	"context"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
)

// CartRepository define el puerto de persistencia del registro del carrito
// (DIP). El registro completo se guarda como una sola entrada clave-valor.
//
// Contrato de Load:
//   - clave ausente            -> (nil, nil)
//   - valor presente corrupto  -> registro vacío, sin error (se recupera
//     localmente, nunca se propaga al usuario)
//   - fallo de I/O             -> (nil, err)
type CartRepository interface {
	Load(ctx context.Context, key string) (*entity.CartRecord, error)
	Save(ctx context.Context, key string, record *entity.CartRecord) error
}
