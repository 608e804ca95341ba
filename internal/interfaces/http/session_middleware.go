package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/jugo-cart/internal/application/dto"
	"github.com/jhoicas/jugo-cart/internal/application/usecase"
	"github.com/jhoicas/jugo-cart/pkg/logger"
	"github.com/jhoicas/jugo-cart/pkg/session"
)

const localCartID = "cart_id"

// SessionConfig parámetros de la cookie de sesión del carrito.
type SessionConfig struct {
	Secret     string
	Issuer     string
	CookieName string
	ExpMinutes int
}

// SessionMiddleware resuelve el carrito de la petición. Una cookie válida
// vincula el navegador con su clave de almacenamiento; si falta o no valida
// se emite un carrito nuevo: id fresco, registro vacío garantizado en el
// almacenamiento (EnsureInitialized) y cookie firmada.
func SessionMiddleware(cfg SessionConfig, carts *usecase.CartUseCase, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(cfg.CookieName); token != "" {
			if cartID, err := session.Parse(cfg.Secret, token); err == nil {
				c.Locals(localCartID, cartID)
				return c.Next()
			}
			// Cookie inválida o expirada: se reemplaza por una sesión nueva.
		}

		cartID := uuid.New().String()
		if err := carts.EnsureInitialized(c.UserContext(), cartID); err != nil {
			log.Error().Err(err).Msg("inicialización del carrito falló")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento del carrito no disponible",
			})
		}
		token, err := session.Generate(cfg.Secret, cartID, cfg.Issuer, cfg.ExpMinutes)
		if err != nil {
			log.Error().Err(err).Msg("emisión del token de sesión falló")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "no se pudo crear la sesión",
			})
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   cfg.ExpMinutes * 60,
			HTTPOnly: true,
			SameSite: "Lax",
		})
		c.Locals(localCartID, cartID)
		return c.Next()
	}
}

// GetCartID devuelve el id de carrito resuelto por el middleware de sesión.
func GetCartID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localCartID).(string); ok {
		return v
	}
	return ""
}
