package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/infrastructure/sqlite"
)

func newTestRepo(t *testing.T) *sqlite.CartRepo {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return sqlite.NewCartRepository(store)
}

// Clave ausente devuelve (nil, nil): el llamador decide el valor por defecto.
func TestCartRepo_LoadAbsentKey(t *testing.T) {
	repo := newTestRepo(t)

	record, err := repo.Load(context.Background(), "jugo_cart_v1:nadie")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCartRepo_SaveThenLoad(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record := entity.NewCartRecord()
	record.Items["jugo-mango"] = &entity.LineItem{
		Price: decimal.RequireFromString("4.25"),
		Title: "Jugo de Mango",
		Image: "/static/img/mango.jpg",
		Qty:   3,
		Pos:   0,
	}
	record.Items["jugo-fresa"] = &entity.LineItem{
		Price: decimal.RequireFromString("3.90"),
		Title: "Jugo de Fresa",
		Qty:   1,
		Pos:   1,
	}
	require.NoError(t, repo.Save(ctx, "jugo_cart_v1:c1", record))

	loaded, err := repo.Load(ctx, "jugo_cart_v1:c1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, 3, loaded.Items["jugo-mango"].Qty)
	assert.True(t, loaded.Items["jugo-mango"].Price.Equal(decimal.RequireFromString("4.25")))
	assert.Equal(t, []string{"jugo-mango", "jugo-fresa"}, loaded.SortedIDs())
}

// Guardar de nuevo sobrescribe el valor completo, no hace merge.
func TestCartRepo_SaveOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := entity.NewCartRecord()
	first.Items["A"] = &entity.LineItem{Price: decimal.NewFromInt(2), Title: "A", Qty: 5}
	require.NoError(t, repo.Save(ctx, "jugo_cart_v1:c1", first))

	require.NoError(t, repo.Save(ctx, "jugo_cart_v1:c1", entity.NewCartRecord()))

	loaded, err := repo.Load(ctx, "jugo_cart_v1:c1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.IsEmpty())
}

// Un valor corrupto se recupera como registro vacío sin propagar error.
func TestCartRepo_CorruptValueRecovers(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	repo := sqlite.NewCartRepository(store)
	ctx := context.Background()

	_, err = store.DB().ExecContext(ctx,
		`INSERT INTO cart_records (key, value, updated_at) VALUES (?, ?, 0)`,
		"jugo_cart_v1:c1", "{esto no es json",
	)
	require.NoError(t, err)

	record, err := repo.Load(ctx, "jugo_cart_v1:c1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.IsEmpty())
}

// Claves distintas son carritos independientes.
func TestCartRepo_KeysIsolated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record := entity.NewCartRecord()
	record.Items["A"] = &entity.LineItem{Price: decimal.NewFromInt(1), Title: "A", Qty: 1}
	require.NoError(t, repo.Save(ctx, "jugo_cart_v1:c1", record))

	other, err := repo.Load(ctx, "jugo_cart_v1:c2")
	require.NoError(t, err)
	assert.Nil(t, other)
}
