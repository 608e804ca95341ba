// Package catalog implementa los orígenes del documento de catálogo
// {products: [{id, name, price, img}, ...]}.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/domain/repository"
)

// document forma del products.json.
type document struct {
	Products []*entity.Product `json:"products"`
}

func decodeDocument(data []byte) ([]*entity.Product, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catálogo: %w", err)
	}
	return doc.Products, nil
}

var _ repository.CatalogRepository = (*HTTPLoader)(nil)

// HTTPLoader obtiene el catálogo vía GET desde una URL fija
// (CATALOG_SOURCE=http). Equivalente del fetch("products.json") original,
// pero con timeout y errores propagados en vez de tragados.
type HTTPLoader struct {
	url        string
	httpClient *http.Client
}

// NewHTTPLoader construye el loader con un timeout de red moderado.
func NewHTTPLoader(url string) *HTTPLoader {
	return &HTTPLoader{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// List descarga y parsea el documento de catálogo.
func (l *HTTPLoader) List(ctx context.Context) ([]*entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catálogo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catálogo: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leer respuesta: %w", err)
	}
	return decodeDocument(body)
}

var _ repository.CatalogRepository = (*FileLoader)(nil)

// FileLoader lee el catálogo de un products.json local
// (CATALOG_SOURCE=file, el valor por defecto).
type FileLoader struct {
	path string
}

// NewFileLoader construye el loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// List lee y parsea el documento de catálogo.
func (l *FileLoader) List(_ context.Context) ([]*entity.Product, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	return decodeDocument(data)
}
