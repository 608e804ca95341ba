package repository

import (
	"context"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
)

// CatalogRepository define el puerto de lectura del catálogo de productos.
// Implementaciones: documento JSON local, documento JSON remoto (HTTP) y
// tabla products en PostgreSQL.
type CatalogRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
}
