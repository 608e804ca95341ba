package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/jugo-cart/internal/domain/entity"
	"github.com/jhoicas/jugo-cart/internal/domain/repository"
	"github.com/jhoicas/jugo-cart/pkg/logger"
)

// KeyPrefix prefijo de la clave de almacenamiento. Se conserva el nombre de
// clave del widget original para compatibilidad con registros existentes.
const KeyPrefix = "jugo_cart_v1:"

// CartListener recibe la notificación de cambio después de cada mutación
// persistida. El contrato es "render tras mutación": exactamente una
// notificación síncrona por operación.
type CartListener interface {
	CartChanged(cartID string)
}

// CartUseCase operaciones sobre el registro del carrito. Es el único dueño
// del registro: las vistas y la calculadora de totales solo leen snapshots.
//
// Un mutex serializa las secuencias leer-modificar-escribir, reproduciendo
// el único hilo lógico de control del widget original. La mutación externa
// de una clave compartida en PostgreSQL desde otro proceso queda fuera de
// esta garantía (limitación aceptada).
type CartUseCase struct {
	repo     repository.CartRepository
	log      *logger.Logger
	mu       sync.Mutex
	listener CartListener
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(repo repository.CartRepository, log *logger.Logger) *CartUseCase {
	return &CartUseCase{repo: repo, log: log}
}

// SetListener registra el observador de mutaciones (normalmente la vista del
// carrito). Debe llamarse durante el arranque, antes de servir peticiones.
func (uc *CartUseCase) SetListener(l CartListener) {
	uc.listener = l
}

func storageKey(cartID string) string {
	return KeyPrefix + cartID
}

// Read carga el registro persistido. Nunca falla: ausencia, valor corrupto
// o error de I/O degradan a un carrito vacío (el error de I/O se registra).
func (uc *CartUseCase) Read(ctx context.Context, cartID string) *entity.CartRecord {
	record, err := uc.repo.Load(ctx, storageKey(cartID))
	if err != nil {
		uc.log.Warn().Err(err).Str("cart_id", cartID).Msg("lectura del carrito falló; se usa carrito vacío")
		return entity.NewCartRecord()
	}
	if record == nil {
		return entity.NewCartRecord()
	}
	record.Normalize()
	return record
}

// Write persiste el registro sobrescribiendo el estado anterior por completo.
func (uc *CartUseCase) Write(ctx context.Context, cartID string, record *entity.CartRecord) error {
	uc.mu.Lock()
	record.Normalize()
	err := uc.repo.Save(ctx, storageKey(cartID), record)
	uc.mu.Unlock()
	if err != nil {
		return err
	}
	uc.notify(cartID)
	return nil
}

// AddItem agrega una unidad del producto. Si el producto no está en el
// carrito se inserta con los metadatos dados y qty 0, y luego se incrementa.
// Los metadatos solo se escriben en la primera inserción: un AddItem
// posterior con price/title/image distintos no los actualiza.
func (uc *CartUseCase) AddItem(ctx context.Context, cartID, productID string, meta entity.ItemMeta) (*entity.CartRecord, error) {
	uc.mu.Lock()
	record := uc.Read(ctx, cartID)
	li, ok := record.Items[productID]
	if !ok {
		li = &entity.LineItem{
			Price: meta.Price,
			Title: meta.Title,
			Image: meta.Image,
			Qty:   0,
			Pos:   record.NextPos(),
		}
		record.Items[productID] = li
	}
	li.Qty++
	err := uc.repo.Save(ctx, storageKey(cartID), record)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}
	uc.notify(cartID)
	return record, nil
}

// SetQuantity fija la cantidad absoluta de una línea. Si el producto no
// existe es un no-op silencioso (sin notificación). La cantidad se acota a
// >= 0; con 0 la línea se elimina del registro, nunca se conserva en cero.
func (uc *CartUseCase) SetQuantity(ctx context.Context, cartID, productID string, qty int) (*entity.CartRecord, error) {
	uc.mu.Lock()
	record := uc.Read(ctx, cartID)
	li, ok := record.Items[productID]
	if !ok {
		uc.mu.Unlock()
		return record, nil
	}
	if qty < 0 {
		qty = 0
	}
	if qty == 0 {
		delete(record.Items, productID)
	} else {
		li.Qty = qty
	}
	err := uc.repo.Save(ctx, storageKey(cartID), record)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}
	uc.notify(cartID)
	return record, nil
}

// Clear persiste un registro vacío incondicionalmente.
func (uc *CartUseCase) Clear(ctx context.Context, cartID string) error {
	uc.mu.Lock()
	err := uc.repo.Save(ctx, storageKey(cartID), entity.NewCartRecord())
	uc.mu.Unlock()
	if err != nil {
		return err
	}
	uc.notify(cartID)
	return nil
}

// EnsureInitialized garantiza que exista un registro bajo la clave del
// carrito antes de confiar en cualquier lectura: mientras la clave esté
// ausente escribe un registro vacío y relee para confirmar la presencia.
// Los fallos de escritura se reintentan con backoff en lugar de propagarse;
// el bucle solo termina por confirmación o por cancelación del contexto.
func (uc *CartUseCase) EnsureInitialized(ctx context.Context, cartID string) error {
	key := storageKey(cartID)
	for attempt := 1; ; attempt++ {
		record, err := uc.repo.Load(ctx, key)
		if err == nil && record != nil {
			return nil
		}
		if err == nil {
			if werr := uc.repo.Save(ctx, key, entity.NewCartRecord()); werr == nil {
				continue // confirmar con la siguiente lectura
			} else {
				uc.log.Warn().Err(werr).Int("attempt", attempt).Str("cart_id", cartID).
					Msg("inicialización del carrito: escritura falló, reintentando")
			}
		} else {
			uc.log.Warn().Err(err).Int("attempt", attempt).Str("cart_id", cartID).
				Msg("inicialización del carrito: lectura falló, reintentando")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(initBackoff(attempt)):
		}
	}
}

func initBackoff(attempt int) time.Duration {
	d := time.Duration(attempt) * 50 * time.Millisecond
	if d > time.Second {
		d = time.Second
	}
	return d
}

// notify dispara exactamente una notificación síncrona por mutación.
func (uc *CartUseCase) notify(cartID string) {
	if uc.listener != nil {
		uc.listener.CartChanged(cartID)
	}
}
