package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidAction        = errors.New("acción desconocida")
	ErrEmptyCart            = errors.New("el carrito está vacío")
	ErrConfirmationRequired = errors.New("se requiere confirmación")
	ErrCatalogUnavailable   = errors.New("catálogo no disponible")
)
