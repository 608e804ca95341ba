package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/internal/domain"
	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/pkg/logger"
)

// fakeCatalogRepo origen de catálogo con fallos inyectables.
type fakeCatalogRepo struct {
	products []*entity.Product
	fail     bool
	lists    int
}

func (r *fakeCatalogRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.lists++
	if r.fail {
		return nil, errors.New("origen caído")
	}
	return r.products, nil
}

func sampleProducts() []*entity.Product {
	return []*entity.Product{
		{ID: "jugo-mango", Name: "Jugo de Mango", Price: decimal.RequireFromString("4.25"), Image: "/static/img/mango.jpg"},
		{ID: "jugo-fresa", Name: "Jugo de Fresa", Price: decimal.RequireFromString("3.90"), Image: "/static/img/fresa.jpg"},
	}
}

// Products hace la carga perezosa la primera vez y conserva el orden del origen.
func TestCatalog_LazyLoadPreservesOrder(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleProducts()}
	uc := usecase.NewCatalogUseCase(repo, logger.Nop())

	products, err := uc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "jugo-mango", products[0].ID)
	assert.Equal(t, "jugo-fresa", products[1].ID)
	assert.Equal(t, 1, repo.lists)

	// La segunda llamada sirve el snapshot sin tocar el origen.
	_, err = uc.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)
}

// El fallo de carga se expone en lugar de tragarse en silencio.
func TestCatalog_FailureSurfaced(t *testing.T) {
	repo := &fakeCatalogRepo{fail: true}
	uc := usecase.NewCatalogUseCase(repo, logger.Nop())

	_, err := uc.Products(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Error(t, uc.LastError())
}

// Un Refresh fallido conserva el último snapshot bueno.
func TestCatalog_RefreshFailureKeepsSnapshot(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleProducts()}
	uc := usecase.NewCatalogUseCase(repo, logger.Nop())

	require.NoError(t, uc.Refresh(context.Background()))

	repo.fail = true
	assert.Error(t, uc.Refresh(context.Background()))
	assert.Error(t, uc.LastError())

	products, err := uc.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

// Un Refresh exitoso posterior limpia el error registrado.
func TestCatalog_RefreshClearsLastError(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleProducts(), fail: true}
	uc := usecase.NewCatalogUseCase(repo, logger.Nop())

	assert.Error(t, uc.Refresh(context.Background()))
	repo.fail = false
	require.NoError(t, uc.Refresh(context.Background()))
	assert.NoError(t, uc.LastError())
}
