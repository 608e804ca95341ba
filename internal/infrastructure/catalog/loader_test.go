package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jugo-cart/internal/infrastructure/catalog"
)

const sampleDoc = `{
  "products": [
    {"id": "jugo-mango", "name": "Jugo de Mango", "price": 4.25, "img": "/static/img/mango.jpg"},
    {"id": "jugo-fresa", "name": "Jugo de Fresa", "price": 3.9, "img": "/static/img/fresa.jpg"}
  ]
}`

func TestFileLoader_List(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	loader := catalog.NewFileLoader(path)
	products, err := loader.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "jugo-mango", products[0].ID)
	assert.Equal(t, "Jugo de Mango", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("4.25")))
	assert.Equal(t, "/static/img/fresa.jpg", products[1].Image)
}

func TestFileLoader_MissingFile(t *testing.T) {
	loader := catalog.NewFileLoader(filepath.Join(t.TempDir(), "no-existe.json"))

	_, err := loader.List(context.Background())
	assert.Error(t, err)
}

func TestFileLoader_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o644))

	_, err := catalog.NewFileLoader(path).List(context.Background())
	assert.Error(t, err)
}

func TestHTTPLoader_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	loader := catalog.NewHTTPLoader(srv.URL)
	products, err := loader.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "jugo-fresa", products[1].ID)
}

// Un estado no-200 se propaga como error en vez de entregarse vacío.
func TestHTTPLoader_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := catalog.NewHTTPLoader(srv.URL).List(context.Background())
	assert.Error(t, err)
}

func TestHTTPLoader_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := catalog.NewHTTPLoader(srv.URL).List(context.Background())
	assert.Error(t, err)
}
