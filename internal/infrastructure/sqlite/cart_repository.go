package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre SQLite. El
// registro completo se serializa como una sola entrada clave-valor JSON,
// igual que la entrada de localStorage que reemplaza.
type CartRepo struct {
	db *sql.DB
}

// NewCartRepository construye el adaptador de persistencia del carrito.
func NewCartRepository(store *Store) *CartRepo {
	return &CartRepo{db: store.DB()}
}

// Load carga el registro bajo la clave. Clave ausente devuelve (nil, nil).
// Un valor corrupto se recupera localmente como registro vacío, sin error.
func (r *CartRepo) Load(ctx context.Context, key string) (*entity.CartRecord, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM cart_records WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart record: %w", err)
	}
	var record entity.CartRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
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
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save cart record: %w", err)
	}
	return nil
}
