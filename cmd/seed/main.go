// Comando seed: carga el catálogo de productos en PostgreSQL a partir de un
// products.json (para CATALOG_SOURCE=postgres).
//
// Uso:
//
//	go run ./cmd/seed -file web/static/products.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/infrastructure/postgres"
	"github.com/jhoicas/jugo-cart/pkg/config"
	"github.com/jhoicas/jugo-cart/pkg/logger"
)

func main() {
	file := flag.String("file", "web/static/products.json", "ruta del products.json")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer products.json")
	}
	var doc struct {
		Products []*entity.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatal().Err(err).Msg("parsear products.json")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de PostgreSQL")
	}

	repo := postgres.NewCatalogRepository(pool)
	for i, p := range doc.Products {
		if err := repo.Upsert(ctx, p, i); err != nil {
			log.Fatal().Err(err).Str("id", p.ID).Msg("upsert de producto")
		}
	}
	log.Info().Int("products", len(doc.Products)).Msg("catálogo sembrado")
}
