package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/jugo-cart/internal/domain"
	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/domain/repository"
	"github.com/jhoicas/jugo-cart/pkg/logger"
)

// CatalogUseCase carga el catálogo de productos y mantiene el snapshot en
// memoria. Un fallo de carga se registra y se EXPONE: la grilla muestra un
// estado de error visible en lugar de tragarse el rechazo como hacía el
// widget original con la promesa del fetch.
type CatalogUseCase struct {
	repo repository.CatalogRepository
	log  *logger.Logger

	mu       sync.RWMutex
	products []*entity.Product
	loaded   bool
	lastErr  error
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, log: log}
}

// Refresh recarga el catálogo desde el origen y reemplaza el snapshot.
// En fallo conserva el último snapshot bueno (si lo hay) y registra el error.
func (uc *CatalogUseCase) Refresh(ctx context.Context) error {
	products, err := uc.repo.List(ctx)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err != nil {
		uc.lastErr = err
		uc.log.Error().Err(err).Msg("carga del catálogo falló")
		return err
	}
	uc.products = products
	uc.loaded = true
	uc.lastErr = nil
	uc.log.Info().Int("products", len(products)).Msg("catálogo cargado")
	return nil
}

// Products devuelve el snapshot del catálogo en el orden del origen.
// Si nunca se cargó con éxito intenta una carga perezosa; si esta también
// falla devuelve domain.ErrCatalogUnavailable.
func (uc *CatalogUseCase) Products(ctx context.Context) ([]*entity.Product, error) {
	uc.mu.RLock()
	loaded := uc.loaded
	snapshot := uc.products
	uc.mu.RUnlock()
	if loaded {
		return snapshot, nil
	}
	if err := uc.Refresh(ctx); err != nil {
		return nil, domain.ErrCatalogUnavailable
	}
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.products, nil
}

// LastError devuelve el error de la última carga fallida (nil si la última
// carga fue exitosa o nunca se intentó).
func (uc *CatalogUseCase) LastError() error {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.lastErr
}
