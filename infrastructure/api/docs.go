// Package api provides the HTTP server, its routes and API documentation.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go/infrastructure/api/middleware"
	"github.com/helixml/trieve-go/infrastructure/openapi"
)

// SwaggerUIHTML returns the HTML template for Swagger UI.
func SwaggerUIHTML(title, specURL string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>` + title + ` Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
    <style>
        html { box-sizing: border-box; overflow: -moz-scrollbars-vertical; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin:0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" charset="UTF-8"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-standalone-preset.js" charset="UTF-8"></script>
    <script>
        window.onload = function() {
            const ui = SwaggerUIBundle({
                url: "` + specURL + `",
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout"
            });
            window.ui = ui;
        };
    </script>
</body>
</html>`
}

// DocsRouter serves Swagger UI for the loaded Trieve OpenAPI document.
type DocsRouter struct {
	doc     *openapi.Document
	specURL string
	logger  zerolog.Logger
}

// NewDocsRouter creates a new documentation router. specURL is where the
// browser fetches the document from.
func NewDocsRouter(doc *openapi.Document, specURL string, logger zerolog.Logger) *DocsRouter {
	return &DocsRouter{doc: doc, specURL: specURL, logger: logger}
}

// Routes returns the chi router for documentation endpoints.
func (d *DocsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(SwaggerUIHTML(d.doc.Title(), d.specURL)))
	})

	router.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(d.doc.Raw())
	})

	router.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		data, err := d.doc.JSON()
		if err != nil {
			middleware.WriteError(w, r, err, d.logger)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})

	return router
}
