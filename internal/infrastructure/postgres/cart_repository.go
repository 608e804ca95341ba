package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL
// (STORAGE_DRIVER=postgres): carritos compartidos entre instancias. El
// registro mantiene la misma forma clave-valor JSON del backend local.
type CartRepo struct {
	pool *pgxpool.Pool
}

// NewCartRepository construye el adaptador de persistencia del carrito.
func NewCartRepository(pool *pgxpool.Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

// Load carga el registro bajo la clave. Clave ausente devuelve (nil, nil);
// un valor corrupto se recupera como registro vacío, sin error.
func (r *CartRepo) Load(ctx context.Context, key string) (*entity.CartRecord, error) {
	var value []byte
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM cart_records WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart record: %w", err)
	}
	var record entity.CartRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return entity.NewCartRecord(), nil
	}
	record.Normalize()
	return &record, nil
}

// Save persiste el registro sobrescribiendo por completo el valor anterior.
func (r *CartRepo) Save(ctx context.Context, key string, record *entity.CartRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal cart record: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO cart_records (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save cart record: %w", err)
	}
	return nil
}
