package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeCartRepo repositorio en memoria con inyección de fallos para los tests
// del caso de uso.
type fakeCartRepo struct {
	mu       sync.Mutex
	records  map[string]*entity.CartRecord
	failSave int // cantidad de Save que fallarán antes de funcionar
	failLoad int
	saves    int
	loads    int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{records: map[string]*entity.CartRecord{}}
}

func (r *fakeCartRepo) Load(_ context.Context, key string) (*entity.CartRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.failLoad > 0 {
		r.failLoad--
		return nil, errors.New("load inyectado")
	}
	record, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	return record.Clone(), nil
}

func (r *fakeCartRepo) Save(_ context.Context, key string, record *entity.CartRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.failSave > 0 {
		r.failSave--
		return errors.New("save inyectado")
	}
	r.records[key] = record.Clone()
	return nil
}

// countingListener cuenta las notificaciones de mutación.
type countingListener struct {
	changes int
	lastID  string
}

func (l *countingListener) CartChanged(cartID string) {
	l.changes++
	l.lastID = cartID
}

func newCartUC(repo *fakeCartRepo) (*usecase.CartUseCase, *countingListener) {
	uc := usecase.NewCartUseCase(repo, logger.Nop())
	listener := &countingListener{}
	uc.SetListener(listener)
	return uc, listener
}

func meta(price string) entity.ItemMeta {
	return entity.ItemMeta{
		Price: decimal.RequireFromString(price),
		Title: "Jugo de Prueba",
		Image: "/static/img/prueba.jpg",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddItem
// ──────────────────────────────────────────────────────────────────────────────

// N llamadas a AddItem con el mismo producto dejan qty == N y conservan los
// metadatos de la PRIMERA llamada.
func TestAddItem_RepeatedAccumulatesQtyAndKeepsFirstMeta(t *testing.T) {
	uc, _ := newCartUC(newFakeCartRepo())
	ctx := context.Background()

	first := entity.ItemMeta{Price: decimal.RequireFromString("2.50"), Title: "Original", Image: "orig.jpg"}
	later := entity.ItemMeta{Price: decimal.RequireFromString("9.99"), Title: "Cambiado", Image: "otro.jpg"}

	_, err := uc.AddItem(ctx, "cart-1", "A", first)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "cart-1", "A", later)
	require.NoError(t, err)
	record, err := uc.AddItem(ctx, "cart-1", "A", later)
	require.NoError(t, err)

	li := record.Items["A"]
	require.NotNil(t, li)
	assert.Equal(t, 3, li.Qty, "qty debe igualar el número de AddItem")
	assert.Equal(t, "Original", li.Title, "los metadatos de la primera inserción no se actualizan")
	assert.True(t, li.Price.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, "orig.jpg", li.Image)
}

// Escenario del contrato: addItem("A", 2.5) dos veces -> qty 2, subtotal 5.00.
func TestAddItem_TwiceSubtotalExact(t *testing.T) {
	uc, _ := newCartUC(newFakeCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", "A", meta("2.5"))
	require.NoError(t, err)
	record, err := uc.AddItem(ctx, "cart-1", "A", meta("2.5"))
	require.NoError(t, err)

	totals := usecase.CalcTotals(record)
	assert.Equal(t, 2, record.Items["A"].Qty)
	assert.Equal(t, "5.00", totals.Subtotal.StringFixed(2))
}

// El orden de inserción queda registrado en Pos para el renderizado.
func TestAddItem_AssignsInsertionPositions(t *testing.T) {
	uc, _ := newCartUC(newFakeCartRepo())
	ctx := context.Background()

	_, _ = uc.AddItem(ctx, "cart-1", "primero", meta("1"))
	_, _ = uc.AddItem(ctx, "cart-1", "segundo", meta("2"))
	record, err := uc.AddItem(ctx, "cart-1", "tercero", meta("3"))
	require.NoError(t, err)

	assert.Equal(t, []string{"primero", "segundo", "tercero"}, record.SortedIDs())
}

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity
// ──────────────────────────────────────────────────────────────────────────────

// q > 0 fija la cantidad exacta; q <= 0 elimina la línea (nunca queda en 0).
func TestSetQuantity_SetsExactAndRemovesAtZero(t *testing.T) {
	uc, _ := newCartUC(newFakeCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", "A", meta("3"))
	require.NoError(t, err)

	record, err := uc.SetQuantity(ctx, "cart-1", "A", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, record.Items["A"].Qty)

	record, err = uc.SetQuantity(ctx, "cart-1", "A", 0)
	require.NoError(t, err)
	assert.NotContains(t, record.Items, "A")
	assert.True(t, record.IsEmpty())
}

func TestSetQuantity_NegativeClampsToRemoval(t *testing.T) {
	uc, _ := newCartUC(newFakeCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", "A", meta("3"))
	require.NoError(t, err)

	record, err := uc.SetQuantity(ctx, "cart-1", "A", -5)
	require.NoError(t, err)
	assert.NotContains(t, record.Items, "A")
}

// SetQuantity sobre un producto ausente es un no-op silencioso: ni error,
// ni escritura, ni notificación de render.
func TestSetQuantity_AbsentIDIsSilentNoop(t *testing.T) {
	repo := newFakeCartRepo()
	uc, listener := newCartUC(repo)
	ctx := context.Background()

	savesBefore := repo.saves
	record, err := uc.SetQuantity(ctx, "cart-1", "fantasma", 3)
	require.NoError(t, err)
	assert.True(t, record.IsEmpty())
	assert.Equal(t, savesBefore, repo.saves, "no debe persistir nada")
	assert.Equal(t, 0, listener.changes, "no debe notificar a la vista")
}

// ──────────────────────────────────────────────────────────────────────────────
// Read / Clear / notificaciones
// ──────────────────────────────────────────────────────────────────────────────

// La lectura nunca falla: ausencia y error de I/O degradan a carrito vacío.
func TestRead_DegradesToEmptyCart(t *testing.T) {
	repo := newFakeCartRepo()
	uc, _ := newCartUC(repo)
	ctx := context.Background()

	record := uc.Read(ctx, "nunca-visto")
	require.NotNil(t, record)
	assert.True(t, record.IsEmpty())

	repo.failLoad = 1
	record = uc.Read(ctx, "nunca-visto")
	require.NotNil(t, record)
	assert.True(t, record.IsEmpty())
}

func TestClear_PersistsEmptyRecord(t *testing.T) {
	uc, _ := newCartUC(newFakeCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", "A", meta("3"))
	require.NoError(t, err)
	require.NoError(t, uc.Clear(ctx, "cart-1"))

	assert.True(t, uc.Read(ctx, "cart-1").IsEmpty())
}

// Toda mutación exitosa dispara exactamente UNA notificación síncrona.
func TestMutations_ExactlyOneNotificationEach(t *testing.T) {
	uc, listener := newCartUC(newFakeCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", "A", meta("2"))
	require.NoError(t, err)
	assert.Equal(t, 1, listener.changes)

	_, err = uc.SetQuantity(ctx, "cart-1", "A", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, listener.changes)

	require.NoError(t, uc.Clear(ctx, "cart-1"))
	assert.Equal(t, 3, listener.changes)
	assert.Equal(t, "cart-1", listener.lastID)

	require.NoError(t, uc.Write(ctx, "cart-1", entity.NewCartRecord()))
	assert.Equal(t, 4, listener.changes)
}

// Un Save fallido no debe notificar: la vista solo re-renderiza estado persistido.
func TestMutations_FailedSaveDoesNotNotify(t *testing.T) {
	repo := newFakeCartRepo()
	uc, listener := newCartUC(repo)
	ctx := context.Background()

	repo.failSave = 1
	_, err := uc.AddItem(ctx, "cart-1", "A", meta("2"))
	require.Error(t, err)
	assert.Equal(t, 0, listener.changes)
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureInitialized
// ──────────────────────────────────────────────────────────────────────────────

// La primera inicialización escribe el registro vacío y confirma releyendo.
func TestEnsureInitialized_WritesEmptyRecordOnce(t *testing.T) {
	repo := newFakeCartRepo()
	uc, listener := newCartUC(repo)
	ctx := context.Background()

	require.NoError(t, uc.EnsureInitialized(ctx, "cart-1"))
	record := uc.Read(ctx, "cart-1")
	assert.True(t, record.IsEmpty())
	assert.Equal(t, 0, listener.changes, "la inicialización no es una mutación de usuario")

	// Segunda llamada: la clave existe, no escribe de nuevo.
	savesBefore := repo.saves
	require.NoError(t, uc.EnsureInitialized(ctx, "cart-1"))
	assert.Equal(t, savesBefore, repo.saves)
}

// Fallos transitorios de escritura se reintentan en lugar de propagarse.
func TestEnsureInitialized_RetriesTransientWriteFailures(t *testing.T) {
	repo := newFakeCartRepo()
	repo.failSave = 2
	uc, _ := newCartUC(repo)
	ctx := context.Background()

	require.NoError(t, uc.EnsureInitialized(ctx, "cart-1"))
	assert.GreaterOrEqual(t, repo.saves, 3, "debió reintentar las escrituras fallidas")
}

// La cancelación del contexto es la única salida sin confirmación.
func TestEnsureInitialized_StopsOnContextCancel(t *testing.T) {
	repo := newFakeCartRepo()
	repo.failSave = 1 << 30 // nunca deja de fallar
	uc, _ := newCartUC(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := uc.EnsureInitialized(ctx, "cart-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
