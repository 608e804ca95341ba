package dto

import "github.com/jhoicas/jugo-cart/internal/domain/entity"

// CatalogResponse lista de productos del catálogo, en el orden del origen.
type CatalogResponse struct {
	Products []*entity.Product `json:"products"`
}
