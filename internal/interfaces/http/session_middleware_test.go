package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jugo-cart/pkg/session"
)

func findSessionCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookie {
			return ck
		}
	}
	return nil
}

// Sin cookie el middleware emite una sesión nueva con un carrito válido.
func TestSession_IssuesCookieOnFirstVisit(t *testing.T) {
	app := buildTestApp(t, defaultCatalog())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ck := findSessionCookie(resp)
	require.NotNil(t, ck, "debe emitirse la cookie de sesión")
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, "/", ck.Path)

	// El token emitido valida contra el mismo secreto.
	cartID, err := session.Parse(testSecret, ck.Value)
	require.NoError(t, err)
	assert.NotEmpty(t, cartID)
}

// Una cookie válida se reutiliza: no se reemite ni cambia el carrito.
func TestSession_ValidCookieReused(t *testing.T) {
	app := buildTestApp(t, defaultCatalog())

	resp := doJSON(t, app, http.MethodPost, "/api/cart/actions", addAction("jugo-mango", "4.25"))
	assert.Nil(t, findSessionCookie(resp))
	resp.Body.Close()

	// Segunda petición con la misma cookie ve el mismo carrito.
	resp = doJSON(t, app, http.MethodGet, "/api/cart", nil)
	cart := decodeCart(t, resp)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "jugo-mango", cart.Items[0].ProductID)
}

// Un token adulterado no vincula ningún carrito: se emite una sesión nueva.
func TestSession_ForgedTokenReplaced(t *testing.T) {
	app := buildTestApp(t, defaultCatalog())

	forged, err := session.Generate("otro-secreto", testCartID, testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: forged})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ck := findSessionCookie(resp)
	require.NotNil(t, ck, "el token adulterado debe reemplazarse")

	cartID, err := session.Parse(testSecret, ck.Value)
	require.NoError(t, err)
	assert.NotEqual(t, testCartID, cartID)
}

// Carritos de sesiones distintas están aislados entre sí.
func TestSession_CartsIsolated(t *testing.T) {
	app := buildTestApp(t, defaultCatalog())

	resp := doJSON(t, app, http.MethodPost, "/api/cart/actions", addAction("jugo-mango", "4.25"))
	resp.Body.Close()

	other, err := session.Generate(testSecret, "00000000-0000-0000-0000-000000000099", testIssuer, testExpMin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: other})
	raw, err := app.Test(req, -1)
	require.NoError(t, err)

	cart := decodeCart(t, raw)
	assert.Empty(t, cart.Items)
}
