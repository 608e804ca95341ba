package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL
// (CATALOG_SOURCE=postgres). La columna price es NUMERIC y se escanea
// directo a decimal gracias al codec registrado en el pool.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador del catálogo.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// List devuelve los productos en el orden de publicación (position).
func (r *CatalogRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, img FROM products ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza un producto (usado por cmd/seed).
func (r *CatalogRepo) Upsert(ctx context.Context, p *entity.Product, position int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, price, img, position) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price,
			img = EXCLUDED.img, position = EXCLUDED.position`,
		p.ID, p.Name, p.Price, p.Image, position,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}
