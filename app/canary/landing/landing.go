// Package landing renders the HTML index page each route group serves at its
// root, and the assets it links to.
package landing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jrazmi/canaryapi/bridge/scaffolding/errs"
	"github.com/jrazmi/canaryapi/infrastructure/web"
)

//go:embed templates/index.html
var templates embed.FS

//go:embed static
var static embed.FS

// StaticPath is where the page's assets are served.
const StaticPath = "/static/"

var index = template.Must(template.ParseFS(templates, "templates/index.html"))

type page struct {
	Prefix string
	Build  string
	Static string
}

// AddHttpRoutes registers the index page at the root of group.
func AddHttpRoutes(group *web.RouteGroup, build string) {
	p := page{Prefix: group.Prefix(), Build: build, Static: StaticPath}

	group.GET("/{$}", func(ctx context.Context, r *http.Request) web.Encoder {
		var buf bytes.Buffer
		if err := index.Execute(&buf, p); err != nil {
			return errs.New(errs.Internal, fmt.Errorf("render index: %w", err))
		}
		return web.RawResponse{Body: buf.Bytes(), ContentType: "text/html; charset=utf-8"}
	})
}

// AddStatic serves the page's assets once for the whole service.
func AddStatic(wh *web.WebHandler) error {
	return wh.FileServer(static, "static", StaticPath)
}
