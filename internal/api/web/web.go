// Package web holds the two full-document templates of the portal (the
// shell and the login screen) and the static assets the shell loads.
// Everything else the browser sees is a fragment produced by the views
// package and swapped in by the shell script.
package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/*
var assetFS embed.FS

// Renderer implements echo.Renderer over the embedded document templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("web").ParseFS(templateFS, "templates/*.tmpl")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Assets returns the static asset tree rooted at assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
