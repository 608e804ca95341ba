// Package view renderiza los fragmentos HTML de la tienda (página, panel
// del carrito y grilla de productos) con plantillas embebidas.
package view

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

// NewEngine construye el motor de plantillas sobre el FS embebido. El mismo
// motor sirve como Views de Fiber y para el render directo de fragmentos.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic("view: subárbol de plantillas: " + err.Error())
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
